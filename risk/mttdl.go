package risk

import (
	"errors"
	"fmt"
	"math"
)

// MaxRedundancy is the highest parity level the engine reports on.
const MaxRedundancy = 6

// ErrRedundancy reports a parity level the MTTDL model cannot evaluate for
// the given member count.
var ErrRedundancy = errors.New("invalid redundancy")

// CheckRedundancy validates that redundancy parity levels can be evaluated
// over members devices. The model needs redundancy+1 distinct failures, so
// members must exceed redundancy.
func CheckRedundancy(redundancy, members int) error {
	if redundancy < 0 || redundancy > MaxRedundancy {
		return fmt.Errorf("%w: parity level %d outside 0..%d", ErrRedundancy, redundancy, MaxRedundancy)
	}
	if members <= redundancy {
		return fmt.Errorf("%w: %d members cannot hold parity level %d", ErrRedundancy, members, redundancy)
	}
	return nil
}

// AnnualDataLossProbability returns the probability that within one year
// the array suffers redundancy+1 overlapping failures, given the summed
// failure rate of its members and the rate at which a full scrub and repair
// completes (repairs per year).
//
// Callers must validate redundancy with CheckRedundancy first.
func AnnualDataLossProbability(arrayRate, repairRate float64, members, redundancy int) float64 {
	// per-device mean time between failures, in years; +Inf when no
	// failures are predicted
	mtbf := float64(members) / arrayRate
	mttr := 1 / repairRate

	mttdl := math.Pow(mtbf, float64(redundancy+1)) / math.Pow(mttr, float64(redundancy))
	// falling product members*(members-1)*...*(members-redundancy), in
	// floating point
	for i := 0; i <= redundancy; i++ {
		mttdl /= float64(members - i)
	}

	return TailAtLeast(1/mttdl, 1)
}

// Cadence is how often the whole array is scrubbed and repaired.
type Cadence int

const (
	Weekly Cadence = iota
	Monthly
	Quarterly
)

// Cadences lists the reported repair intervals, shortest first.
var Cadences = []Cadence{Weekly, Monthly, Quarterly}

// Days is the length of the interval.
func (c Cadence) Days() int {
	switch c {
	case Weekly:
		return 7
	case Monthly:
		return 30
	case Quarterly:
		return 90
	}
	panic(fmt.Sprintf("unknown cadence %d", int(c)))
}

// RepairRate is the number of full repairs per year.
func (c Cadence) RepairRate() float64 {
	return 365 / float64(c.Days())
}

// Label is the human readable interval, e.g. "1 Week".
func (c Cadence) Label() string {
	switch c {
	case Weekly:
		return "1 Week"
	case Monthly:
		return "1 Month"
	case Quarterly:
		return "3 Months"
	}
	return fmt.Sprintf("Cadence(%d)", int(c))
}

// Key is a short identifier used in metric labels.
func (c Cadence) Key() string {
	switch c {
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	}
	return fmt.Sprintf("cadence%d", int(c))
}
