// Package smart defines the telemetry vocabulary shared by the device
// collaborators and the risk model: SMART attribute identifiers, the
// per-device attribute snapshot, and decoding of smartctl JSON output.
package smart

// ID identifies a monitored counter. Values 0..255 are SMART attribute ids;
// ErrorCount and Size are synthetic counters with no SMART equivalent.
type ID int

const (
	ReallocatedSectors ID = 5
	PowerOnHours       ID = 9
	PowerCycles        ID = 12
	ReportedUncorrect  ID = 187
	CommandTimeout     ID = 188
	AirflowTemperature ID = 190
	LoadCycles         ID = 193
	Temperature        ID = 194
	CurrentPending     ID = 197
	OfflineUncorrect   ID = 198
	ErrorCount         ID = 256 // entries in the device error log
	Size               ID = 257 // capacity in bytes
)

// Snapshot maps attribute ids to raw counter values. A missing key means the
// telemetry source does not expose that counter ("unassigned"); the nil
// Snapshot is the all-unassigned snapshot.
type Snapshot map[ID]uint64

// Value returns the raw value of id and whether it is assigned.
func (s Snapshot) Value(id ID) (uint64, bool) {
	v, ok := s[id]
	return v, ok
}

// Clone returns an independent copy of s. Cloning nil yields nil.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	c := make(Snapshot, len(s))
	for id, v := range s {
		c[id] = v
	}
	return c
}
