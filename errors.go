package ioloop

import (
	"errors"
	"fmt"
	"io"
)

// Standard errors surfaced through Result.Err. These are never returned
// directly from Tick; they are always delivered to the Completion's callback
// as the Result matching its Operation's Kind.
var (
	// ErrInvalidOp is returned to a cancel Completion whose Target is itself
	// a cancel operation.
	ErrInvalidOp = errors.New("ioloop: cancel target must not itself be a cancel")

	// ErrBatchFull is returned synchronously to an accept/read/write/recv/send
	// Completion when the Batch has no free slot at submission time.
	ErrBatchFull = errors.New("ioloop: batch has no free subscription slot")

	// ErrEOF is the error reported for a read or recv Completion whose
	// Operation returned zero bytes. It is an alias of io.EOF so callers may
	// use errors.Is(result.Err, io.EOF) interchangeably.
	ErrEOF = io.EOF
)

// UnexpectedError wraps a host errno for operations whose error taxonomy is
// otherwise just "it failed": shutdown, close, and async_wait. The wrapped
// error is reachable via errors.Unwrap for host-specific matching (e.g.
// errors.Is against a syscall.Errno).
type UnexpectedError struct {
	Op  OpKind
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("ioloop: unexpected error performing %s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// wrapUnexpected returns nil if err is nil, and an *UnexpectedError otherwise.
// Used by the synchronous close/shutdown/async_wait completion paths, which
// per the error taxonomy carry an Unexpected/Unknown wrapper rather than a
// bare host error.
func wrapUnexpected(op OpKind, err error) error {
	if err == nil {
		return nil
	}
	return &UnexpectedError{Op: op, Err: err}
}
