package ioloop

// loopOptions holds configuration resolved from Option values at New.
type loopOptions struct {
	entriesHint int
	host        Host
	logger      Logger
}

// Option configures a Loop instance.
type Option interface {
	applyLoop(*loopOptions) error
}

type loopOptionFunc func(*loopOptions) error

func (f loopOptionFunc) applyLoop(opts *loopOptions) error { return f(opts) }

// WithEntriesHint sizes the Loop's internal Batch to hold n concurrent
// fd subscriptions (plus the one reserved clock slot). Submitting more
// than n such Completions at once yields ErrBatchFull until some retire.
func WithEntriesHint(n int) Option {
	return loopOptionFunc(func(opts *loopOptions) error {
		opts.entriesHint = n
		return nil
	})
}

// WithHost supplies the platform adapter the Loop drives for its clock,
// multiplexed wait, and blocking I/O calls. Required: New returns an error
// if no Host is configured.
func WithHost(h Host) Option {
	return loopOptionFunc(func(opts *loopOptions) error {
		opts.host = h
		return nil
	})
}

// WithLogger attaches a structured logger the Loop uses to trace
// submissions, dispatch, and errors. The zero value (nil Logger) disables
// logging entirely; it is always safe to omit this option.
func WithLogger(l Logger) Option {
	return loopOptionFunc(func(opts *loopOptions) error {
		opts.logger = l
		return nil
	})
}

// resolveOptions applies opts over the documented defaults. The default of
// 128 (rather than the distilled spec's fixed batch capacity of 1024) is a
// consequence of WithEntriesHint being authoritative here instead of
// advisory: scenario §8.6's "capacity" is this value plus the reserved clock
// slot, caller-configurable, not a fixed constant.
func resolveOptions(opts []Option) (*loopOptions, error) {
	cfg := &loopOptions{
		entriesHint: 128,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyLoop(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
