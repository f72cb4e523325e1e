package ioloop

// TimerTrigger distinguishes why a timer Result was delivered.
type TimerTrigger uint8

const (
	// TriggerExpiration means the timer's deadline passed.
	TriggerExpiration TimerTrigger = iota
	// TriggerCancel means the timer was stopped by a cancel Completion.
	TriggerCancel
	// TriggerRequest is reserved for a caller-requested immediate fire. It
	// is part of the trigger taxonomy but is never emitted by this
	// implementation (see the original design's open questions).
	TriggerRequest
)

// Result is a tagged variant isomorphic to Operation: Kind always equals the
// Kind of the Operation that produced it. Only the fields relevant to Kind
// are meaningful.
type Result struct {
	Kind OpKind

	// N is the number of bytes transferred, for read/write/recv/send.
	N int

	// AcceptFD is the newly accepted file descriptor, for accept.
	AcceptFD int

	// Trigger distinguishes expiration from cancellation, for timer.
	Trigger TimerTrigger

	// Err is nil on success. Its concrete type follows the error taxonomy
	// for Kind: ErrInvalidOp (cancel), ErrBatchFull or a host error or
	// ErrEOF (accept/read/write/recv/send), or *UnexpectedError
	// (shutdown/close/async_wait).
	Err error
}
