// Package risk estimates device and array reliability.
//
// Device failure rates come from empirical calibration tables (Backblaze
// SMART statistics) interpolated per attribute and summed. Array data loss
// uses the MTTDL approximation (Gibson, "Redundant Disk Arrays", 1990) fed
// into a Poisson model.
//
// AFR follows the Backblaze definition: expected failures per device-year,
// AFR = 8760/MTBF with MTBF in hours. An AFR of 1.0 means one expected
// failure per year in a continuously occupied slot. The probability of at
// least one failure in the next year (AFP) is TailAtLeast(AFR, 1).
package risk

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/raidrisk/raidrisk/smart"
)

// Point is one calibration breakpoint: the AFR observed at a raw counter value.
type Point struct {
	Value uint64
	AFR   float64
}

// Table maps one SMART attribute's raw counter to an annual failure rate.
// Points start at (0, 0) and are strictly increasing in Value.
type Table struct {
	Attribute smart.ID
	Points    []Point

	fit interp.PiecewiseLinear
}

func newTable(id smart.ID, points ...Point) *Table {
	t := &Table{Attribute: id, Points: points}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Value)
		ys[i] = p.AFR
	}
	if err := t.fit.Fit(xs, ys); err != nil {
		panic(fmt.Sprintf("calibration table for attribute %d: %v", id, err))
	}
	return t
}

// Calibration tables from Backblaze SMART stats (2014).
var (
	afr5 = newTable(smart.ReallocatedSectors,
		Point{0, 0},
		Point{1, 0.027432608477803388},
		Point{4, 0.07501976284584981},
		Point{16, 0.23589260654405794},
		Point{70, 0.36193219378600433},
		Point{260, 0.5676621428968173},
		Point{1100, 1.5028253400346423},
		Point{4500, 2.0659987547404763},
		Point{17000, 1.7755385684503124},
	)

	afr187 = newTable(smart.ReportedUncorrect,
		Point{0, 0},
		Point{1, 0.33877621175661743},
		Point{3, 0.5014425058387142},
		Point{11, 0.5346094598348444},
		Point{20, 0.8428063943161636},
		Point{35, 1.4429071005017484},
		Point{65, 1.6190935390549661},
	)

	afr188 = newTable(smart.CommandTimeout,
		Point{0, 0},
		Point{1, 0.10044174089362015},
		Point{13000000000, 0.334030592234279},
		Point{26000000000, 0.36724705400842445},
	)

	afr193 = newTable(smart.LoadCycles,
		Point{0, 0},
		Point{1300, 0.024800489215129725},
		Point{5500, 0.05859661417772557},
		Point{21000, 0.19566577603409208},
		Point{90000, 0.2673688205712117},
	)

	afr197 = newTable(smart.CurrentPending,
		Point{0, 0},
		Point{1, 0.34196613799103254},
		Point{2, 0.6823772508117681},
		Point{16, 0.9564879341127684},
		Point{40, 1.6519989942167461},
		Point{100, 2.5137741046831956},
		Point{250, 3.3203378817413904},
	)

	afr198 = newTable(smart.OfflineUncorrect,
		Point{0, 0},
		Point{1, 0.8135764944275583},
		Point{2, 1.1173469387755102},
		Point{4, 1.3558692421991083},
		Point{10, 1.7464114832535886},
		Point{12, 2.6449275362318843},
	)
)

// Tables lists the calibration tables of every monitored attribute.
var Tables = []*Table{afr5, afr187, afr188, afr193, afr197, afr198}

// Interpolate returns the AFR at value. Zero means no observed events and
// always yields 0. Values past the last breakpoint keep the last rate.
//
// Between breakpoints the result is the segment's linear interpolation,
// evaluated as below + slope*(value-valueBelow) with a slope fitted once per
// segment. It may differ from the two-point form
// below + (value-valueBelow)*(above-below)/(valueAbove-valueBelow) in the
// last bit; breakpoints themselves are exact.
func Interpolate(t *Table, value uint64) float64 {
	if value == 0 {
		return 0
	}
	return t.fit.Predict(float64(value))
}
