//go:build linux || darwin

// Host is the poll(2)-based ioloop.Host adapter for Linux and Darwin.
package hostunix

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/pollring/ioloop"
)

// Host implements ioloop.Host and ioloop.Waker using poll(2) for the
// multiplexed wait call and a self-pipe (or eventfd, on Linux) to interrupt
// a blocked Wait from another goroutine.
type Host struct {
	wakeR, wakeW int
	pollFDs      []unix.PollFd
}

// New opens the wake descriptor pair backing Host's Waker implementation.
// The returned Host must be closed with Close once no longer needed.
func New() (*Host, error) {
	r, w, err := createWakeFD()
	if err != nil {
		return nil, err
	}
	return &Host{wakeR: r, wakeW: w}, nil
}

// Close releases the wake descriptors. It does not touch any fd the caller
// registered operations against.
func (h *Host) Close() error {
	if h.wakeR >= 0 {
		_ = unix.Close(h.wakeR)
	}
	if h.wakeW >= 0 && h.wakeW != h.wakeR {
		_ = unix.Close(h.wakeW)
	}
	return nil
}

// Now implements ioloop.Host.
func (h *Host) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return time.Now().UnixNano()
	}
	return ts.Nano()
}

// WakeWait implements ioloop.Waker.
func (h *Host) WakeWait() error {
	return writeWake(h.wakeW)
}

// Wait implements ioloop.Host. subs[0] is always the reserved clock
// subscription; subs[1:] name the fds to watch. One extra poll slot watches
// the wake descriptor so a concurrent AsyncNotify can interrupt a blocked
// call immediately.
func (h *Host) Wait(subs []ioloop.Subscription, events []ioloop.Event) ([]ioloop.Event, error) {
	n := len(subs) - 1
	if cap(h.pollFDs) < n+1 {
		h.pollFDs = make([]unix.PollFd, n+1)
	}
	h.pollFDs = h.pollFDs[:n+1]

	for i := 1; i < len(subs); i++ {
		var ev int16 = unix.POLLIN
		if subs[i].Kind == ioloop.SubWrite {
			ev = unix.POLLOUT
		}
		h.pollFDs[i-1] = unix.PollFd{Fd: int32(subs[i].FD), Events: ev}
	}
	wakeSlot := n
	h.pollFDs[wakeSlot] = unix.PollFd{Fd: int32(h.wakeR), Events: unix.POLLIN}

	timeoutMs := timeoutMillis(subs[0].DeadlineNs, h.Now())

	for {
		_, err := unix.Poll(h.pollFDs, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return events, err
		}
		break
	}

	if h.pollFDs[wakeSlot].Revents != 0 {
		drainWake(h.wakeR)
	}

	for i := 1; i < len(subs); i++ {
		pfd := h.pollFDs[i-1]
		if pfd.Revents == 0 {
			continue
		}
		var err error
		if pfd.Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			err = unix.EBADF
		}
		// POLLHUP alone still unblocks the Completion: the subsequent
		// read/write reports EOF or an error on its own.
		events = append(events, ioloop.Event{UserData: subs[i].UserData, Err: err})
	}

	return events, nil
}

// timeoutMillis converts an absolute monotonic deadline into a poll(2)
// millisecond timeout, rounding up so a deadline a fraction of a
// millisecond away never becomes a busy-loop.
func timeoutMillis(deadlineNs, nowNs int64) int {
	remaining := deadlineNs - nowNs
	if remaining <= 0 {
		return 0
	}
	ms := remaining / int64(time.Millisecond)
	if remaining%int64(time.Millisecond) != 0 {
		ms++
	}
	if ms > int64(^uint32(0)>>1) {
		ms = int64(^uint32(0) >> 1)
	}
	return int(ms)
}

func (h *Host) Accept(fd int) (int, error) {
	nfd, _, err := unix.Accept4(fd, unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK)
	return nfd, err
}

func (h *Host) Read(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

func (h *Host) Write(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

func (h *Host) Recv(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

func (h *Host) Send(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

func (h *Host) Shutdown(fd int, how ioloop.ShutdownHow) error {
	var w int
	switch how {
	case ioloop.ShutdownRead:
		w = unix.SHUT_RD
	case ioloop.ShutdownWrite:
		w = unix.SHUT_WR
	default:
		w = unix.SHUT_RDWR
	}
	return unix.Shutdown(fd, w)
}

func (h *Host) Close(fd int) error {
	return unix.Close(fd)
}
