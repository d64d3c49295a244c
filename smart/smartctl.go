package smart

import (
	"encoding/json"
	"fmt"
)

// Device is the subset of a smartctl report the risk engine consumes.
type Device struct {
	Name   string
	Model  string
	Serial string
	Smart  Snapshot
}

// smartctlJSON mirrors the parts of `smartctl -a --json` output we read.
type smartctlJSON struct {
	Device struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Protocol string `json:"protocol"`
	} `json:"device"`
	ModelFamily  string `json:"model_family"`
	ModelName    string `json:"model_name"`
	SerialNumber string `json:"serial_number"`
	UserCapacity struct {
		Bytes uint64 `json:"bytes"`
	} `json:"user_capacity"`
	Temperature *struct {
		Current uint64 `json:"current"`
	} `json:"temperature"`
	PowerOnTime *struct {
		Hours uint64 `json:"hours"`
	} `json:"power_on_time"`
	ATASmartAttributes *struct {
		Table []struct {
			ID  int `json:"id"`
			Raw struct {
				Value uint64 `json:"value"`
			} `json:"raw"`
		} `json:"table"`
	} `json:"ata_smart_attributes"`
	ATASmartErrorLog *struct {
		Summary *struct {
			Count uint64 `json:"count"`
		} `json:"summary"`
		Extended *struct {
			Count uint64 `json:"count"`
		} `json:"extended"`
	} `json:"ata_smart_error_log"`
	NVMeHealth *struct {
		Temperature      uint64 `json:"temperature"`
		PowerCycles      uint64 `json:"power_cycles"`
		PowerOnHours     uint64 `json:"power_on_hours"`
		NumErrLogEntries uint64 `json:"num_err_log_entries"`
	} `json:"nvme_smart_health_information_log"`
}

// Decode parses `smartctl -a --json` output. A report without any SMART
// section yields an empty snapshot, not an error.
func Decode(data []byte) (*Device, error) {
	var raw smartctlJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode smartctl json: %w", err)
	}

	dev := &Device{
		Name:   raw.Device.Name,
		Model:  raw.ModelName,
		Serial: raw.SerialNumber,
		Smart:  Snapshot{},
	}
	if dev.Model == "" {
		dev.Model = raw.ModelFamily
	}
	if raw.UserCapacity.Bytes > 0 {
		dev.Smart[Size] = raw.UserCapacity.Bytes
	}

	if raw.ATASmartAttributes != nil {
		for _, attr := range raw.ATASmartAttributes.Table {
			if attr.ID <= 0 || attr.ID > 255 {
				continue
			}
			dev.Smart[ID(attr.ID)] = attr.Raw.Value
		}
	}

	if log := raw.ATASmartErrorLog; log != nil {
		switch {
		case log.Extended != nil:
			dev.Smart[ErrorCount] = log.Extended.Count
		case log.Summary != nil:
			dev.Smart[ErrorCount] = log.Summary.Count
		}
	}

	// NVMe counters are only mapped onto informational ids, never onto the
	// calibrated HDD attributes.
	if nvme := raw.NVMeHealth; nvme != nil {
		dev.Smart[Temperature] = nvme.Temperature
		dev.Smart[PowerOnHours] = nvme.PowerOnHours
		dev.Smart[PowerCycles] = nvme.PowerCycles
		dev.Smart[ErrorCount] = nvme.NumErrLogEntries
	}

	// The ATA table raw value for 194 packs min/max into the upper bytes on
	// many drives; prefer the normalized top-level reading when present.
	if raw.Temperature != nil {
		dev.Smart[Temperature] = raw.Temperature.Current
	}
	if _, ok := dev.Smart[PowerOnHours]; !ok && raw.PowerOnTime != nil {
		dev.Smart[PowerOnHours] = raw.PowerOnTime.Hours
	}

	return dev, nil
}
