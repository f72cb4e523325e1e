// Package ioloop implements a callback-driven asynchronous event loop over a
// single multiplexed "poll one-shot" wait primitive, of the kind exposed by
// sandboxed, capability-oriented syscall surfaces (one batched readiness
// call, plus a handful of blocking syscalls for accept, shutdown and close).
//
// # Submission model
//
// Callers build a Completion describing one unit of work (read, write, recv,
// send, accept, shutdown, close, timer, async wait, or cancel) and hand it to
// Loop.Add. The loop drains submissions once per Tick, routing each into
// whichever internal structure its operation requires: the batch (I/O), the
// timer heap (timer), the async waiter list (async_wait), or straight to a
// synchronous result (cancel, shutdown, close). Results are always delivered
// through the Completion's Callback, which decides whether the Completion is
// rearmed (resubmitted) or disarmed (retired).
//
// # Host
//
// The loop never touches an OS file descriptor directly: all of read, write,
// accept, recv, send, shutdown, close, the monotonic clock and the
// multiplexed wait call are abstracted behind the Host interface. This keeps
// the loop itself portable across hosts that expose the same shape of
// capability (see the hostunix subpackage for a concrete adapter built on
// poll(2)).
//
// # Concurrency
//
// Loop is single-threaded cooperative: Add, Run, Tick, and the internal
// start/stop routines must only be called from the loop's owning goroutine.
// The sole exception is AsyncNotify, which may be called from any goroutine
// to wake a completion parked in async_wait.
package ioloop
