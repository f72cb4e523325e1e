//go:build linux

package hostunix

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// createWakeFD creates an eventfd usable as both the read and write end of
// the wake signal.
func createWakeFD() (readFD, writeFD int, err error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return 0, 0, err
	}
	return fd, fd, nil
}

// writeWake signals the wake fd once. eventfd's counter is a host-native
// uint64, not a byte-order-agnostic buffer; encoding a bare 1 in the wrong
// order would add 2^56 to the counter instead of 1 on a little-endian host.
func writeWake(fd int) error {
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	_, err := unix.Write(fd, one[:])
	return err
}

// drainWake empties the wake fd after a Wait call observes it readable.
func drainWake(fd int) {
	var buf [8]byte
	for {
		if _, err := unix.Read(fd, buf[:]); err != nil {
			return
		}
	}
}
