// register.go wires the sysfs collaborator into the device package's
// registration variable (NewPlatformQuerierFunc). This init() runs when any
// package imports device/sysfs; cmd/ does so with a blank import.

package sysfs

import "github.com/raidrisk/raidrisk/device"

func init() {
	device.NewPlatformQuerierFunc = New
}
