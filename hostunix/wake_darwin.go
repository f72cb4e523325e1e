//go:build darwin

package hostunix

import "golang.org/x/sys/unix"

// createWakeFD creates a self-pipe; eventfd has no Darwin equivalent.
func createWakeFD() (readFD, writeFD int, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return 0, 0, err
	}
	return fds[0], fds[1], nil
}

// writeWake signals the wake pipe once.
func writeWake(fd int) error {
	_, err := unix.Write(fd, []byte{1})
	return err
}

// drainWake empties the wake pipe after a Wait call observes it readable.
func drainWake(fd int) {
	var buf [64]byte
	for {
		if _, err := unix.Read(fd, buf[:]); err != nil {
			return
		}
	}
}
