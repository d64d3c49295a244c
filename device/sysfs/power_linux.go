//go:build linux

package sysfs

import (
	"fmt"
	"io"
	"math/rand"

	"golang.org/x/sys/unix"
)

// readBlock is the size of the spin-up read. It is a multiple of every
// logical block size in use, as O_DIRECT requires.
const readBlock = 4096

// directRead wakes a device with one read of a random block, bypassing the
// page cache so the platters have to move.
func directRead(file string) error {
	fd, err := unix.Open(file, unix.O_RDONLY|unix.O_DIRECT|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer unix.Close(fd)

	size, err := unix.Seek(fd, 0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("size of %s: %w", file, err)
	}
	if size < readBlock {
		return fmt.Errorf("%s: device too small (%d bytes)", file, size)
	}

	// anonymous mappings are page aligned
	buf, err := unix.Mmap(-1, 0, readBlock, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return fmt.Errorf("read buffer: %w", err)
	}
	defer unix.Munmap(buf)

	off := rand.Int63n(size/readBlock) * readBlock
	if _, err := unix.Pread(fd, buf, off); err != nil {
		return fmt.Errorf("read %s at %d: %w", file, off, err)
	}
	return nil
}
