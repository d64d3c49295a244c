package report

import (
	"io"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/raidrisk/raidrisk/risk"
)

const metricPrefix = "raidrisk_"

func gauge(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricPrefix + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func addSample(mf *dto.MetricFamily, v float64, labels ...string) {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	mf.Metric = append(mf.Metric, m)
}

// Families converts s into Prometheus metric families.
func Families(s *Smart) []*dto.MetricFamily {
	devAFR := gauge("device_annual_failure_rate", "Estimated failures per year of the device from SMART attributes.")
	devProb := gauge("device_failure_probability", "Probability that the device fails in the next year.")
	for _, r := range s.Rows {
		labels := []string{"disk", r.Name, "device", r.File, "serial", r.Serial}
		addSample(devAFR, r.AFR, labels...)
		addSample(devProb, r.FailureProbability(), labels...)
	}

	arrAFR := gauge("array_annual_failure_rate", "Summed failure rate of all array members.")
	addSample(arrAFR, s.ArrayRate)

	members := gauge("array_members", "Configured data and parity members.")
	addSample(members, float64(s.Members))

	atLeastOne := gauge("array_failure_probability", "Probability of at least one member failure in the next year.")
	addSample(atLeastOne, s.AtLeastOneFailure())

	loss := gauge("array_data_loss_probability", "Probability of unrecoverable data loss in the next year by parity level and scrub interval.")
	for _, l := range s.Loss {
		for i, p := range l.Probability {
			addSample(loss, p, "parity", strconv.Itoa(l.Redundancy), "scrub", risk.Cadences[i].Key())
		}
	}

	return []*dto.MetricFamily{devAFR, devProb, arrAFR, members, atLeastOne, loss}
}

// WriteMetrics renders s in the Prometheus text exposition format, suitable
// for the node_exporter textfile collector.
func WriteMetrics(w io.Writer, s *Smart) error {
	for _, mf := range Families(s) {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
