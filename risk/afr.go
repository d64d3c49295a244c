package risk

import "github.com/raidrisk/raidrisk/smart"

// DeviceAnnualFailureRate sums the interpolated AFR of every monitored
// attribute assigned in s. Attributes are treated as independent even though
// they likely are not, so the sum overestimates correlated signals.
func DeviceAnnualFailureRate(s smart.Snapshot) float64 {
	afr := 0.0
	for _, t := range Tables {
		if v, ok := s.Value(t.Attribute); ok {
			afr += Interpolate(t, v)
		}
	}
	return afr
}
