package ioloop

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// defaultMaxPollWait bounds how long a Tick's Host.Wait call may block when
// no timer is pending, so a Host without a Waker still rechecks AsyncNotify
// periodically instead of stalling forever.
const defaultMaxPollWait = 5 * time.Second

// Loop is the single-threaded event loop: one goroutine drives New, Add,
// Tick (or Run), and Done; AsyncNotify is the sole exception, safe to call
// from any goroutine. See the package doc comment for the full model.
type Loop struct {
	host   Host
	logger Logger

	batch   *batch
	timers  *timerHeap
	waiters fifo

	submissions fifo
	notify      asyncNotify

	events []Event
}

// New constructs a Loop. WithHost is required; every other Option has a
// documented default.
func New(opts ...Option) (*Loop, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if cfg.host == nil {
		return nil, errors.New("ioloop: New requires WithHost")
	}
	logger := cfg.logger
	if logger == nil {
		logger = noopLogger{}
	}
	l := &Loop{
		host:   cfg.host,
		logger: logger,
		batch:  newBatch(cfg.entriesHint),
		timers: &timerHeap{},
		events: make([]Event, 0, cfg.entriesHint+1),
	}
	return l, nil
}

// Add submits c for processing starting from the next Tick. c must be
// StateDead: either never submitted, or previously disarmed. Add itself
// never invokes c.Callback; even a submission that will fail synchronously
// (ErrBatchFull, ErrInvalidOp) only does so once Tick drains it.
func (l *Loop) Add(c *Completion) error {
	if c == nil {
		return errors.New("ioloop: Add requires a non-nil Completion")
	}
	if c.state != StateDead {
		return fmt.Errorf("ioloop: Add requires a dead Completion, got state %s", c.state)
	}
	c.state = StateAdding
	l.submissions.push(c)
	return nil
}

// AsyncNotify wakes c's async_wait Completion, and nudges the Host out of
// any blocked Wait call if it implements Waker. Safe to call concurrently,
// from any goroutine, any number of times before the loop observes it.
func (l *Loop) AsyncNotify(c *Completion) {
	c.asyncWoken.Set()
	l.notify.Set()
	if w, ok := l.host.(Waker); ok {
		_ = w.WakeWait()
	}
}

// Done reports whether the Loop currently holds no work: nothing queued,
// parked in the timer heap, waiting on an async notify, or occupying a
// batch slot.
func (l *Loop) Done() bool {
	return l.submissions.empty() && l.waiters.empty() && l.timers.Len() == 0 && l.batch.len() == 0
}

// Run calls Tick until Done or ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Done() {
			return nil
		}
		if err := l.Tick(ctx); err != nil {
			return err
		}
	}
}

// Tick runs one iteration: it drains submitted Completions, fires expired
// timers, services any async waiters woken since the last Tick, then makes
// exactly one Host.Wait call bounded by the soonest timer deadline (or
// defaultMaxPollWait) and dispatches whatever that call reports ready.
// Expired timers are serviced before async waiters, which are serviced
// before I/O events from Host.Wait, matching the ordering within a tick.
func (l *Loop) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.drainSubmissions()

	now := l.host.Now()
	l.fireExpiredTimers(now)
	l.serviceAsyncWaiters()

	deadline := now + defaultMaxPollWait.Nanoseconds()
	if e := l.timers.peek(); e != nil && e.deadlineNs < deadline {
		deadline = e.deadlineNs
	}
	l.batch.setClockDeadline(deadline)

	events, err := l.host.Wait(l.batch.subs, l.events[:0])
	if err != nil {
		l.logger.Log(LogEntry{Level: LevelError, Message: "host wait failed", Err: err})
		return err
	}
	l.events = events

	for _, ev := range events {
		c := completionFromUserdata(ev.UserData)
		if c == nil || c.state != StateActive {
			continue
		}
		l.batch.remove(c)
		c.state = StateInProgress
		res := c.perform(l.host, ev.Err)
		l.deliver(c, res, true)
	}

	return nil
}

// drainSubmissions routes every Completion queued by Add since the last
// Tick. It snapshots the queue first, so a Completion re-submitted while
// draining (rearm-via-Add) is left for the following Tick rather than
// processed again in this one.
func (l *Loop) drainSubmissions() {
	head := l.submissions.drain()
	for c := head; c != nil; {
		next := c.next
		c.next = nil
		if c.state == StateAdding {
			l.start(c)
		}
		c = next
	}
}

// serviceAsyncWaiters dispatches every parked async_wait Completion whose
// per-waiter flag was set since the last Tick. It is skipped entirely, at no
// cost beyond one atomic swap, when AsyncNotify has not fired.
func (l *Loop) serviceAsyncWaiters() {
	if !l.notify.TestAndClear() {
		return
	}
	head := l.waiters.drain()
	for c := head; c != nil; {
		next := c.next
		c.next = nil
		if c.asyncWoken.TestAndClear() {
			c.state = StateInProgress
			l.deliver(c, Result{Kind: OpAsyncWait}, true)
		} else {
			l.waiters.push(c)
		}
		c = next
	}
}

// fireExpiredTimers delivers TriggerExpiration to every timer Completion
// whose deadline is at or before now, soonest first. A rearm is deferred to
// the next Tick via Add rather than re-started immediately: a rearm that
// left the deadline unchanged (or moved it no later than now) would
// otherwise reinsert into the heap only to be peeked and re-fired by this
// same loop, spinning forever instead of waiting for the next applicable
// Tick.
func (l *Loop) fireExpiredTimers(now int64) {
	for {
		e := l.timers.peek()
		if e == nil || e.deadlineNs > now {
			return
		}
		l.timers.popExpired()
		c := e.c
		c.state = StateInProgress
		l.deliver(c, Result{Kind: OpTimer, Trigger: TriggerExpiration}, false)
	}
}

// start routes a freshly-dead-to-adding Completion to wherever its Kind
// belongs: the timer heap, the waiters fifo, the batch, or (for the
// synchronous kinds) straight through to the Host and its callback. It is
// also the rearm path for Completions whose callback asked to run again
// within the same Tick.
func (l *Loop) start(c *Completion) {
	switch c.Op.Kind {
	case OpCancel:
		l.handleCancel(c)

	case OpTimer:
		c.state = StateActive
		l.timers.push(c, c.Op.Deadline)

	case OpAsyncWait:
		c.state = StateActive
		l.waiters.push(c)

	case OpShutdown:
		err := l.host.Shutdown(c.Op.FD, c.Op.How)
		l.deliver(c, Result{Kind: OpShutdown, Err: wrapUnexpected(OpShutdown, err)}, false)

	case OpClose:
		err := l.host.Close(c.Op.FD)
		l.deliver(c, Result{Kind: OpClose, Err: wrapUnexpected(OpClose, err)}, false)

	default: // OpAccept, OpRead, OpWrite, OpRecv, OpSend
		if !l.batch.add(subscriptionFor(c), c) {
			l.logger.Log(LogEntry{Level: LevelWarn, Message: "batch full", Op: c.Op.Kind, FD: c.Op.FD})
			l.deliver(c, Result{Kind: c.Op.Kind, Err: ErrBatchFull}, false)
			return
		}
		c.state = StateActive
	}
}

// handleCancel implements the cancel operation: rejecting a cancel-of-cancel,
// then stopping the target and reporting success.
func (l *Loop) handleCancel(c *Completion) {
	target := c.Op.Target
	if target.Op.Kind == OpCancel {
		l.logger.Log(LogEntry{Level: LevelWarn, Message: "rejected cancel of a cancel", Op: OpCancel})
		l.deliver(c, Result{Kind: OpCancel, Err: ErrInvalidOp}, false)
		return
	}
	l.stop(target)
	l.deliver(c, Result{Kind: OpCancel}, false)
}

// stop removes target from whichever internal structure currently holds it.
// Per target.state:
//
//   - dead: already gone; a silent no-op.
//   - adding: target is still linked into the submissions fifo being (or
//     about to be) drained. Marking it dead here makes drainSubmissions skip
//     it when it is reached.
//   - active timer: removed from the heap and delivered TriggerCancel.
//   - active async_wait or batched I/O: removed from its structure with no
//     callback invocation. Interrupting a blocked syscall or an in-flight
//     async wait is not supported by this loop.
//   - in_progress: target's result has already been demultiplexed this Tick
//     and is about to be (or just was) delivered; there is nothing left to
//     stop, and the in-flight trigger/result must not be overwritten.
func (l *Loop) stop(target *Completion) {
	switch target.state {
	case StateDead, StateInProgress:
		return

	case StateAdding:
		target.state = StateDead

	case StateActive:
		switch target.Op.Kind {
		case OpTimer:
			l.timers.removeCompletion(target)
			target.state = StateDead
			l.deliver(target, Result{Kind: OpTimer, Trigger: TriggerCancel}, false)
		case OpAsyncWait:
			l.removeWaiter(target)
			target.state = StateDead
		default:
			l.batch.remove(target)
			target.state = StateDead
		}
	}
}

// removeWaiter unlinks target from the waiters fifo by rebuilding it without
// target; the fifo has no back-pointers, so this is O(n) in the number of
// currently-parked waiters.
func (l *Loop) removeWaiter(target *Completion) {
	head := l.waiters.drain()
	for c := head; c != nil; {
		next := c.next
		c.next = nil
		if c != target {
			l.waiters.push(c)
		}
		c = next
	}
}

// deliver invokes c's callback with res, then either disarms c or rearms it,
// per the Action returned. rearmImmediate selects which rearm path applies:
// true re-routes c through start within this same Tick (the path taken by
// async_wait and batched I/O completions processed inline inside Tick);
// false re-submits c via Add, deferring it to the next Tick (the path taken
// by cancel, shutdown, close, and expired timers, none of which may safely
// re-enter their own structure within the same Tick they were just removed
// from: for a timer in particular, re-heaping within fireExpiredTimers' own
// expiration loop would spin on an unchanged deadline; see
// fireExpiredTimers).
func (l *Loop) deliver(c *Completion, res Result, rearmImmediate bool) {
	action := c.Callback(c.UserData, l, c, res)
	if action == Disarm {
		c.state = StateDead
		return
	}
	if rearmImmediate {
		l.start(c)
		return
	}
	c.state = StateDead
	_ = l.Add(c)
}
