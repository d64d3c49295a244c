// Package report renders device topology, SMART risk reports and their
// Prometheus exposition.
package report

import (
	"fmt"
	"strconv"
	"strings"
)

// percentPrecision lists, most significant first, the smallest value
// (exclusive) printed with the given number of decimals.
var percentPrecision = []struct {
	above  float64
	digits int
}{
	{0.1, 2},
	{0.01, 3},
	{0.001, 4},
	{1e-4, 5},
	{1e-5, 6},
	{1e-6, 7},
	{1e-7, 8},
	{1e-8, 9},
	{1e-9, 10},
	{1e-10, 11},
	{1e-11, 12},
	{1e-12, 13},
}

// Percent formats v, already scaled to percent, with enough decimals to
// show its leading significant digits: Percent(50) is "50.00%",
// Percent(0.1) is "0.100%".
func Percent(v float64) string {
	digits := 14
	for _, p := range percentPrecision {
		if v > p.above {
			digits = p.digits
			break
		}
	}
	return strconv.FormatFloat(v, 'f', digits, 64) + "%"
}

// PadRight appends spaces to s up to width bytes.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Format selects how a SMART report is rendered.
type Format int

const (
	Text Format = iota
	Prometheus
)

// ParseFormat maps a command-line name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return Text, nil
	case "prom", "prometheus":
		return Prometheus, nil
	}
	return Text, fmt.Errorf("unknown report format %q (want text or prom)", s)
}

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Prometheus:
		return "prom"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}
