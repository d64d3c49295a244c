package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raidrisk/raidrisk/risk"
	"github.com/raidrisk/raidrisk/smart"
)

// Row is one device line of a SMART report.
type Row struct {
	Name   string // member name; empty for a device outside the array
	File   string
	Serial string
	Smart  smart.Snapshot
	AFR    float64
}

// FailureProbability is the probability the device fails within a year.
func (r Row) FailureProbability() float64 {
	return risk.TailAtLeast(r.AFR, 1)
}

// Loss is the annual data loss probability at one parity level, one value
// per entry of risk.Cadences.
type Loss struct {
	Redundancy  int
	Probability []float64
}

// Smart is a computed SMART report, ready to render.
type Smart struct {
	Title     string
	Rows      []Row
	Members   int
	ArrayRate float64
	Loss      []Loss
}

// AtLeastOneFailure is the probability that some member fails within a year.
func (s *Smart) AtLeastOneFailure() float64 {
	return risk.TailAtLeast(s.ArrayRate, 1)
}

const separator = " " + "-----------------------------------------------------------------------" + "\n"

// lossWidths are the column widths of the loss table, one per cadence.
var lossWidths = []int{20, 18, 14}

// WriteSmart renders s as the text SMART report.
func WriteSmart(w io.Writer, s *Smart) error {
	var b strings.Builder

	serialPad, devicePad := 0, 0
	for _, r := range s.Rows {
		serialPad = max(serialPad, len(r.Serial))
		devicePad = max(devicePad, len(r.File))
	}

	title := s.Title
	if title == "" {
		title = "RaidRisk"
	}
	fmt.Fprintf(&b, "%s SMART report:\n\n", title)
	b.WriteString("   Temp  Power  Error AFP Size\n")
	b.WriteString("     C° OnDays  Count   %   TB")
	b.WriteString("  " + PadRight("Serial", serialPad))
	b.WriteString("  " + PadRight("Device", devicePad))
	b.WriteString("  Disk\n")
	b.WriteString(separator)

	for _, r := range s.Rows {
		writeRow(&b, r, serialPad, devicePad)
	}

	b.WriteString("\n")
	b.WriteString("The AFP (Annual Failure Probability) is the probability that the disk is\n")
	b.WriteString("going to fail in the next year.\n\n")

	fmt.Fprintf(&b, "Probability of at least one disk failure in the next year is: %.0f %%\n\n", s.AtLeastOneFailure()*100)

	b.WriteString("Probability of data loss in the next year for different parity and\n")
	b.WriteString("scrub/repair times:\n\n")
	b.WriteString("  Parity  1 Week                 1 Month              3 Months\n")
	b.WriteString(separator)
	for _, l := range s.Loss {
		fmt.Fprintf(&b, "%6d", l.Redundancy)
		for i, p := range l.Probability {
			b.WriteString("    " + PadRight(Percent(p*100), lossWidths[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("These are the probabilities that in the next year you'll have a sequence\n")
	b.WriteString("of failures that the parity WONT be able to recover, assuming that you\n")
	b.WriteString("regularly scrub and repair the full array in the specified time.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, r Row, serialPad, devicePad int) {
	if v, ok := r.Smart.Value(smart.Temperature); ok {
		fmt.Fprintf(b, "%7d", v)
	} else if v, ok := r.Smart.Value(smart.AirflowTemperature); ok {
		fmt.Fprintf(b, "%7d", v)
	} else {
		b.WriteString("      -")
	}

	if v, ok := r.Smart.Value(smart.PowerOnHours); ok {
		fmt.Fprintf(b, "%7d", v/24)
	} else {
		b.WriteString("      -")
	}

	if v, ok := r.Smart.Value(smart.ErrorCount); ok {
		fmt.Fprintf(b, "%6d", v)
	} else {
		b.WriteString("     -")
	}

	fmt.Fprintf(b, "%5.0f", r.FailureProbability()*100)

	if v, ok := r.Smart.Value(smart.Size); ok {
		fmt.Fprintf(b, "  %2.1f", float64(v)/1e12)
	} else {
		b.WriteString("    -")
	}

	b.WriteString("  " + PadRight(orDash(r.Serial), serialPad))
	b.WriteString("  " + PadRight(orDash(r.File), devicePad))
	b.WriteString("  ")
	if r.Name != "" {
		b.WriteString(r.Name)
	} else {
		b.WriteString("- (not tracked)")
	}
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
