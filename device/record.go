// Package device describes array members and the physical devices behind
// them, as resolved by a platform Querier.
//
// # Roles
//
// A List holds two kinds of Record:
//   - logical records, one per configured member (disk or parity slot), whose
//     Parent points at the physical device that hosts them;
//   - physical records, one per distinct device, with no parent.
//
// Several logical records may share one physical record (two members on
// partitions of the same disk). The physical record appears once.
//
// Platform collaborators live in sub-packages and register themselves via
// init() by setting NewPlatformQuerierFunc (see device/sysfs).
package device

import (
	"fmt"

	"github.com/raidrisk/raidrisk/smart"
)

// ID is an opaque platform device identifier.
type ID struct {
	Major uint32
	Minor uint32
}

func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.Major, id.Minor)
}

// Member is one configured array member as requested from the Querier.
type Member struct {
	Name  string // display name, e.g. "d1" or "parity"
	Mount string // directory on the member's filesystem
}

// NoParent marks a Record with no backing device.
const NoParent = -1

// Record is one entry of a resolved List.
type Record struct {
	ID     ID
	Name   string // member name for logical records, model or kernel name for physical ones
	File   string // device node, e.g. /dev/sda1
	Mount  string
	Serial string
	Smart  smart.Snapshot

	// Parent is the index of the backing physical record in the owning
	// List, or NoParent.
	Parent int

	// PowerErr holds the outcome of a spin-up or spin-down on this device.
	PowerErr error
}

// Logical reports whether r is a member record backed by a device.
func (r *Record) Logical() bool {
	return r.Parent != NoParent
}

// List owns a set of records and the parent relation between them.
type List struct {
	records []Record
}

// Add appends r and returns its index.
func (l *List) Add(r Record) int {
	l.records = append(l.records, r)
	return len(l.records) - 1
}

// AddPhysical appends r as a physical record and returns its index. If a
// physical record with the same ID exists its index is returned instead and
// r is dropped.
func (l *List) AddPhysical(r Record) int {
	if i := l.FindPhysical(r.ID); i >= 0 {
		return i
	}
	r.Parent = NoParent
	return l.Add(r)
}

// AddLogical appends r backed by the physical record at parent.
func (l *List) AddLogical(r Record, parent int) int {
	if parent < 0 || parent >= len(l.records) {
		panic(fmt.Sprintf("device: parent index %d out of range [0,%d)", parent, len(l.records)))
	}
	r.Parent = parent
	return l.Add(r)
}

// FindPhysical returns the index of the physical record with id, or -1.
func (l *List) FindPhysical(id ID) int {
	for i := range l.records {
		if l.records[i].Parent == NoParent && l.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Len is the number of records of both roles.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// At returns the record at index i. The pointer stays valid until the next Add.
func (l *List) At(i int) *Record {
	return &l.records[i]
}

// Parent returns the physical record backing the record at i, or nil.
func (l *List) Parent(i int) *Record {
	p := l.records[i].Parent
	if p == NoParent {
		return nil
	}
	return &l.records[p]
}

// Logical returns the indexes of logical records in insertion order.
func (l *List) Logical() []int {
	var out []int
	for i := 0; i < l.Len(); i++ {
		if l.records[i].Parent != NoParent {
			out = append(out, i)
		}
	}
	return out
}

// Physical returns the indexes of physical records in insertion order.
func (l *List) Physical() []int {
	var out []int
	for i := 0; i < l.Len(); i++ {
		if l.records[i].Parent == NoParent {
			out = append(out, i)
		}
	}
	return out
}

// Children returns the indexes of logical records backed by the record at i.
func (l *List) Children(i int) []int {
	var out []int
	for j := 0; j < l.Len(); j++ {
		if l.records[j].Parent == i {
			out = append(out, j)
		}
	}
	return out
}
