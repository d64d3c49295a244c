// Package array turns a configured parity array into device queries and
// dispatches the device operations: spin-up, spin-down, topology listing and
// the SMART risk report.
package array

import (
	"fmt"
	"path/filepath"

	"github.com/raidrisk/raidrisk/device"
)

// Disk is a data member of the array.
type Disk struct {
	Name string
	Dir  string
}

// Parity is a parity slot, stored as a single file on its own filesystem.
type Parity struct {
	Path string
}

// Array is the configured member layout. The number of parity slots is the
// redundancy: how many simultaneous member failures can be recovered.
type Array struct {
	Disks  []Disk
	Parity []Parity
}

// ParityLabel names the parity slot at index i: "parity", "2-parity", ...
func ParityLabel(i int) string {
	if i == 0 {
		return "parity"
	}
	return fmt.Sprintf("%d-parity", i+1)
}

// Requested lists the members to resolve: every disk in order, then every
// parity slot, mounted at the directory holding its file.
func (a *Array) Requested() []device.Member {
	members := make([]device.Member, 0, len(a.Disks)+len(a.Parity))
	for _, d := range a.Disks {
		members = append(members, device.Member{Name: d.Name, Mount: d.Dir})
	}
	for i, p := range a.Parity {
		members = append(members, device.Member{Name: ParityLabel(i), Mount: filepath.Dir(p.Path)})
	}
	return members
}

// MemberCount is the number of configured members, regardless of how many
// distinct devices back them.
func (a *Array) MemberCount() int {
	return len(a.Disks) + len(a.Parity)
}

// Redundancy is the configured parity level.
func (a *Array) Redundancy() int {
	return len(a.Parity)
}
