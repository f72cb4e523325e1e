// Package obslog wires the loop's Logger interface to logiface, using
// stumpy as the concrete JSON writer.
package obslog

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/pollring/ioloop"
)

// stumpyLogger adapts a logiface.Logger[*stumpy.Event] to ioloop.Logger.
type stumpyLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// New builds an ioloop.Logger that writes newline-delimited JSON to w using
// stumpy's encoder. A nil w defaults to os.Stderr.
func New(w io.Writer) ioloop.Logger {
	if w == nil {
		w = os.Stderr
	}
	return &stumpyLogger{
		l: stumpy.L.New(
			stumpy.L.WithStumpy(),
			stumpy.L.WithWriter(w),
		),
	}
}

func (s *stumpyLogger) Log(entry ioloop.LogEntry) {
	b := s.builder(entry.Level)
	if b == nil {
		return
	}
	b = b.Str("op", entry.Op.String())
	if entry.FD != 0 {
		b = b.Int("fd", entry.FD)
	}
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func (s *stumpyLogger) builder(level ioloop.LogLevel) *logiface.Builder[*stumpy.Event] {
	switch level {
	case ioloop.LevelDebug:
		return s.l.Debug()
	case ioloop.LevelInfo:
		return s.l.Info()
	case ioloop.LevelWarn:
		return s.l.Warning()
	case ioloop.LevelError:
		return s.l.Err()
	default:
		return s.l.Info()
	}
}
