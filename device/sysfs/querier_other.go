//go:build !linux

package sysfs

import "github.com/raidrisk/raidrisk/device"

// New returns a Querier that reports every operation as unsupported; device
// topology is only discovered through Linux sysfs.
func New(device.Options) device.Querier {
	return device.Unsupported
}
