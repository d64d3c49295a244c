package array

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/raidrisk/raidrisk/device"
	"github.com/raidrisk/raidrisk/report"
	"github.com/raidrisk/raidrisk/risk"
)

// Operation is one of SpinUp, SpinDown, ListTopology or SmartReport.
type Operation interface {
	kind() device.Kind
	run(s *Session, list *device.List) error
}

// SpinUp wakes every device of the array.
type SpinUp struct{}

// SpinDown puts every device of the array in standby.
type SpinDown struct{}

// ListTopology prints which device backs each member.
type ListTopology struct{}

// SmartReport prints the SMART risk report.
type SmartReport struct {
	Format report.Format
	Title  string // report heading; empty keeps the default
}

// Session binds an operation to its array, device collaborator and output.
type Session struct {
	Array   *Array
	Querier device.Querier
	Out     io.Writer // report output
	Err     io.Writer // diagnostics
}

// Run resolves the array devices for op and renders its result. An
// operation the platform does not support prints one diagnostic and is not
// an error.
func Run(ctx context.Context, s Session, op Operation) error {
	kind := op.kind()
	switch kind {
	case device.SpinUp, device.SpinDown:
		if _, err := fmt.Fprintf(s.Out, "%s...\n", kind); err != nil {
			return err
		}
	}

	list, err := Resolve(ctx, s.Querier, s.Array.Requested(), kind)
	if errors.Is(err, device.ErrUnsupported) {
		logrus.Debugf("Device query: %v", err)
		_, err = fmt.Fprintf(s.Err, "%s unsupported on this platform.\n", kind)
		return err
	}
	if err != nil {
		return err
	}
	logrus.Debugf("Resolved %d members on %d devices", len(list.Logical()), len(list.Physical()))

	return op.run(&s, list)
}

func (SpinUp) kind() device.Kind { return device.SpinUp }
func (SpinDown) kind() device.Kind { return device.SpinDown }

func (SpinUp) run(_ *Session, list *device.List) error {
	reportPower(device.SpinUp, list)
	return nil
}

func (SpinDown) run(_ *Session, list *device.List) error {
	reportPower(device.SpinDown, list)
	return nil
}

// reportPower logs failed power transitions. They never fail the operation.
func reportPower(kind device.Kind, list *device.List) {
	for _, i := range list.Physical() {
		rec := list.At(i)
		if rec.PowerErr != nil {
			logrus.Warnf("%s of %s failed: %v", kind, rec.File, rec.PowerErr)
			continue
		}
		logrus.Debugf("%s of %s done", kind, rec.File)
	}
}

func (ListTopology) kind() device.Kind { return device.ListTopology }

func (ListTopology) run(s *Session, list *device.List) error {
	return report.WriteTopology(s.Out, list)
}

func (SmartReport) kind() device.Kind { return device.SmartReport }

func (op SmartReport) run(s *Session, list *device.List) error {
	sm := Summarize(list, s.Array.MemberCount())
	sm.Title = op.Title
	if op.Format == report.Prometheus {
		return report.WriteMetrics(s.Out, sm)
	}
	return report.WriteSmart(s.Out, sm)
}

// Summarize computes the SMART report of a resolved list: one row per
// member, then one per device that backs no member, and the data loss table
// for every parity level the array size allows.
func Summarize(list *device.List, members int) *report.Smart {
	sm := &report.Smart{
		Members:   members,
		ArrayRate: FailureRate(list),
	}

	for _, i := range list.Logical() {
		sm.Rows = append(sm.Rows, row(list.At(i), list.At(i).Name))
	}
	for _, i := range list.Physical() {
		if len(list.Children(i)) == 0 {
			sm.Rows = append(sm.Rows, row(list.At(i), ""))
		}
	}

	for r := 1; r <= risk.MaxRedundancy; r++ {
		if err := risk.CheckRedundancy(r, members); err != nil {
			logrus.Debugf("Skipping parity level %d: %v", r, err)
			continue
		}
		loss := report.Loss{Redundancy: r}
		for _, c := range risk.Cadences {
			loss.Probability = append(loss.Probability,
				risk.AnnualDataLossProbability(sm.ArrayRate, c.RepairRate(), members, r))
		}
		sm.Loss = append(sm.Loss, loss)
	}
	return sm
}

func row(rec *device.Record, name string) report.Row {
	return report.Row{
		Name:   name,
		File:   rec.File,
		Serial: rec.Serial,
		Smart:  rec.Smart,
		AFR:    risk.DeviceAnnualFailureRate(rec.Smart),
	}
}
