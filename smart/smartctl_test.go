package smart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ataReport = `{
  "device": {"name": "/dev/sda", "type": "sat", "protocol": "ATA"},
  "model_family": "Western Digital Red",
  "model_name": "WDC WD40EFRX-68N32N0",
  "serial_number": "WD-WCC7K1234567",
  "user_capacity": {"blocks": 7814037168, "bytes": 4000787030016},
  "temperature": {"current": 34},
  "power_on_time": {"hours": 26280},
  "ata_smart_attributes": {
    "revision": 16,
    "table": [
      {"id": 5, "name": "Reallocated_Sector_Ct", "value": 200, "raw": {"value": 16, "string": "16"}},
      {"id": 9, "name": "Power_On_Hours", "value": 65, "raw": {"value": 26281, "string": "26281"}},
      {"id": 194, "name": "Temperature_Celsius", "value": 116, "raw": {"value": 223338299426, "string": "34 (Min/Max 20/52)"}},
      {"id": 197, "name": "Current_Pending_Sector", "value": 200, "raw": {"value": 0, "string": "0"}}
    ]
  },
  "ata_smart_error_log": {"summary": {"revision": 1, "count": 3}}
}`

const nvmeReport = `{
  "device": {"name": "/dev/nvme0", "type": "nvme", "protocol": "NVMe"},
  "model_name": "Samsung SSD 990 PRO 2TB",
  "serial_number": "S73WNJ0X123456Y",
  "user_capacity": {"blocks": 3907029168, "bytes": 2000398934016},
  "nvme_smart_health_information_log": {
    "temperature": 41,
    "available_spare": 100,
    "percentage_used": 2,
    "power_cycles": 112,
    "power_on_hours": 4012,
    "media_errors": 7,
    "num_err_log_entries": 9
  }
}`

func TestDecode_ATAReport_MapsTableAndSynthetic(t *testing.T) {
	dev, err := Decode([]byte(ataReport))
	require.NoError(t, err)

	assert.Equal(t, "/dev/sda", dev.Name)
	assert.Equal(t, "WDC WD40EFRX-68N32N0", dev.Model)
	assert.Equal(t, "WD-WCC7K1234567", dev.Serial)

	v, ok := dev.Smart.Value(ReallocatedSectors)
	assert.True(t, ok)
	assert.Equal(t, uint64(16), v)

	v, ok = dev.Smart.Value(CurrentPending)
	assert.True(t, ok, "a zero counter is still assigned")
	assert.Equal(t, uint64(0), v)

	assert.Equal(t, uint64(4000787030016), dev.Smart[Size])
	assert.Equal(t, uint64(3), dev.Smart[ErrorCount])
	// table value wins for power-on hours, top-level reading for temperature
	assert.Equal(t, uint64(26281), dev.Smart[PowerOnHours])
	assert.Equal(t, uint64(34), dev.Smart[Temperature])

	_, ok = dev.Smart.Value(ReportedUncorrect)
	assert.False(t, ok, "attributes missing from the table stay unassigned")
}

func TestDecode_NVMeReport_NeverFeedsCalibratedAttributes(t *testing.T) {
	dev, err := Decode([]byte(nvmeReport))
	require.NoError(t, err)

	assert.Equal(t, uint64(41), dev.Smart[Temperature])
	assert.Equal(t, uint64(4012), dev.Smart[PowerOnHours])
	assert.Equal(t, uint64(112), dev.Smart[PowerCycles])
	assert.Equal(t, uint64(9), dev.Smart[ErrorCount])

	for _, id := range []ID{ReallocatedSectors, ReportedUncorrect, CommandTimeout, LoadCycles, CurrentPending, OfflineUncorrect} {
		_, ok := dev.Smart.Value(id)
		assert.False(t, ok, "attribute %d must stay unassigned for NVMe", id)
	}
}

func TestDecode_NoSmartSections_EmptySnapshot(t *testing.T) {
	dev, err := Decode([]byte(`{"device": {"name": "/dev/sdb"}, "serial_number": ""}`))
	require.NoError(t, err)
	assert.Empty(t, dev.Smart)
	assert.Equal(t, "", dev.Serial)
}

func TestDecode_MalformedJSON_ReturnsError(t *testing.T) {
	_, err := Decode([]byte(`{"device": `))
	assert.Error(t, err)
}

func TestSnapshot_NilIsAllUnassigned(t *testing.T) {
	var s Snapshot
	_, ok := s.Value(ReallocatedSectors)
	assert.False(t, ok)
	assert.Nil(t, s.Clone())
}

func TestSnapshot_Clone_IsIndependent(t *testing.T) {
	s := Snapshot{ReallocatedSectors: 4}
	c := s.Clone()
	c[ReallocatedSectors] = 100
	assert.Equal(t, uint64(4), s[ReallocatedSectors])
}
