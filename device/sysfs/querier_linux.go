//go:build linux

// Package sysfs resolves array members to block devices through Linux sysfs
// and collects SMART telemetry with smartctl.
package sysfs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/raidrisk/raidrisk/device"
	"github.com/raidrisk/raidrisk/smart"
)

// sectorSize is the unit of /sys/block/<dev>/size, independent of the
// device's logical block size.
const sectorSize = 512

// Querier implements device.Querier on Linux. The function fields are
// collaborator seams; New fills them with the real system calls.
type Querier struct {
	SysRoot  string // usually /sys
	DevRoot  string // usually /dev
	Smartctl string

	// Stat returns the id of the block device holding path.
	Stat func(path string) (device.ID, error)
	// Run executes a command and returns its standard output.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath locates an executable.
	LookPath func(file string) (string, error)
	// Read performs one uncached read from a device node.
	Read func(file string) error
}

var _ device.Querier = (*Querier)(nil)

// New returns a Querier bound to the running system.
func New(opts device.Options) device.Querier {
	smartctl := opts.Smartctl
	if smartctl == "" {
		smartctl = "smartctl"
	}
	return &Querier{
		SysRoot:  "/sys",
		DevRoot:  "/dev",
		Smartctl: smartctl,
		Stat:     statDevice,
		Run:      runCommand,
		LookPath: exec.LookPath,
		Read:     directRead,
	}
}

func statDevice(path string) (device.ID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return device.ID{}, fmt.Errorf("stat %s: %w", path, err)
	}
	dev := uint64(st.Dev)
	return device.ID{Major: unix.Major(dev), Minor: unix.Minor(dev)}, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Query implements device.Querier.
func (q *Querier) Query(ctx context.Context, members []device.Member, kind device.Kind) (*device.List, error) {
	var smartctl string
	if kind == device.SmartReport || kind == device.SpinDown {
		path, err := q.LookPath(q.Smartctl)
		if err != nil {
			logrus.Debugf("smartctl lookup: %v", err)
			return &device.List{}, fmt.Errorf("%s: %w", kind, device.ErrUnsupported)
		}
		smartctl = path
	}

	list := &device.List{}
	sizes := map[int]uint64{}
	for _, m := range members {
		if err := q.resolve(list, sizes, m); err != nil {
			logrus.Warnf("Skipping %s at %s: %v", m.Name, m.Mount, err)
		}
	}

	switch kind {
	case device.SmartReport:
		q.addUntracked(list, sizes)
		q.collectSmart(ctx, list, smartctl, sizes)
	case device.SpinDown:
		for _, i := range list.Physical() {
			rec := list.At(i)
			_, rec.PowerErr = q.Run(ctx, smartctl, "-s", "standby,now", rec.File)
		}
	case device.SpinUp:
		for _, i := range list.Physical() {
			rec := list.At(i)
			rec.PowerErr = q.Read(rec.File)
		}
	}
	return list, nil
}

// resolve adds the logical record of m and, if new, its physical device.
func (q *Querier) resolve(list *device.List, sizes map[int]uint64, m device.Member) error {
	id, err := q.Stat(m.Mount)
	if err != nil {
		return err
	}

	node, err := filepath.EvalSymlinks(filepath.Join(q.SysRoot, "dev", "block", id.String()))
	if err != nil {
		return fmt.Errorf("device %s not in sysfs: %w", id, err)
	}

	disk := node
	if _, err := os.Stat(filepath.Join(node, "partition")); err == nil {
		disk = filepath.Dir(node)
	}
	diskID, err := readID(filepath.Join(disk, "dev"))
	if err != nil {
		return err
	}

	parent := list.FindPhysical(diskID)
	if parent < 0 {
		parent = q.addDisk(list, sizes, disk, diskID)
	}

	list.AddLogical(device.Record{
		ID:    id,
		Name:  m.Name,
		File:  filepath.Join(q.DevRoot, filepath.Base(node)),
		Mount: m.Mount,
	}, parent)
	return nil
}

// addDisk adds the physical record of the sysfs disk directory dir.
func (q *Querier) addDisk(list *device.List, sizes map[int]uint64, dir string, id device.ID) int {
	kname := filepath.Base(dir)
	name := readTrimmed(filepath.Join(dir, "device", "model"))
	if name == "" {
		name = kname
	}
	i := list.AddPhysical(device.Record{
		ID:   id,
		Name: name,
		File: filepath.Join(q.DevRoot, kname),
	})
	if sectors, err := strconv.ParseUint(readTrimmed(filepath.Join(dir, "size")), 10, 64); err == nil {
		sizes[i] = sectors * sectorSize
		logrus.Debugf("Found %s %s (%s)", kname, name, humanize.Bytes(sectors*sectorSize))
	}
	return i
}

// virtualPrefixes are kernel names of block devices that have no SMART data.
var virtualPrefixes = []string{"loop", "ram", "zram", "dm-", "md", "sr", "fd", "nbd"}

// addUntracked adds every other disk of the system, so the SMART report also
// shows devices outside the array.
func (q *Querier) addUntracked(list *device.List, sizes map[int]uint64) {
	entries, err := os.ReadDir(filepath.Join(q.SysRoot, "block"))
	if err != nil {
		logrus.Debugf("List block devices: %v", err)
		return
	}
next:
	for _, e := range entries {
		name := e.Name()
		for _, prefix := range virtualPrefixes {
			if strings.HasPrefix(name, prefix) {
				continue next
			}
		}
		dir := filepath.Join(q.SysRoot, "block", name)
		id, err := readID(filepath.Join(dir, "dev"))
		if err != nil || list.FindPhysical(id) >= 0 {
			continue
		}
		q.addDisk(list, sizes, dir, id)
	}
}

// collectSmart queries every physical device once and copies the telemetry
// to the members it hosts.
func (q *Querier) collectSmart(ctx context.Context, list *device.List, smartctl string, sizes map[int]uint64) {
	for _, i := range list.Physical() {
		rec := list.At(i)
		// smartctl sets exit status bits for warnings while still printing a
		// complete report
		out, err := q.Run(ctx, smartctl, "-a", "--json", rec.File)
		if len(out) == 0 {
			logrus.Warnf("No SMART data for %s: %v", rec.File, err)
			continue
		}
		dev, derr := smart.Decode(out)
		if derr != nil {
			logrus.Warnf("No SMART data for %s: %v", rec.File, derr)
			continue
		}
		if err != nil {
			logrus.Debugf("smartctl %s: %v", rec.File, err)
		}

		rec.Serial = dev.Serial
		rec.Smart = dev.Smart
		if _, ok := rec.Smart[smart.Size]; !ok && sizes[i] > 0 {
			rec.Smart[smart.Size] = sizes[i]
		}
		for _, c := range list.Children(i) {
			child := list.At(c)
			child.Serial = rec.Serial
			child.Smart = rec.Smart.Clone()
		}
	}
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readID parses a sysfs "major:minor" file.
func readID(path string) (device.ID, error) {
	s := readTrimmed(path)
	majStr, minStr, ok := strings.Cut(s, ":")
	if !ok {
		return device.ID{}, fmt.Errorf("malformed device number %q in %s", s, path)
	}
	major, err := strconv.ParseUint(majStr, 10, 32)
	if err != nil {
		return device.ID{}, fmt.Errorf("malformed device number %q in %s: %w", s, path, err)
	}
	minor, err := strconv.ParseUint(minStr, 10, 32)
	if err != nil {
		return device.ID{}, fmt.Errorf("malformed device number %q in %s: %w", s, path, err)
	}
	return device.ID{Major: uint32(major), Minor: uint32(minor)}, nil
}
