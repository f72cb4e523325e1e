//go:build windows

package hostunix

import "errors"

// ErrUnsupported is returned by New on platforms this adapter does not
// implement. A full IOCP-based Host is a substantial undertaking of its own
// (see the teacher's poller_windows.go for the shape of it) and is left out
// of this package's scope; write a Host implementation against
// ioloop.Host/ioloop.Waker directly if Windows support is needed.
var ErrUnsupported = errors.New("hostunix: no poll(2)-based Host implementation on windows")

// Host is an unusable stand-in so the package still compiles on Windows.
type Host struct{}

// New always fails on windows.
func New() (*Host, error) { return nil, ErrUnsupported }
