package ioloop

import "sync/atomic"

// asyncFlag is a lock-free, idempotent wakeup flag: Set may be called from
// any goroutine any number of times before it is observed, and collapses to
// a single pending wakeup. TestAndClear is called only from the loop's own
// goroutine.
type asyncFlag struct {
	set atomic.Bool
}

// Set marks the flag pending. Safe to call concurrently from any number of
// goroutines; redundant calls are free.
func (f *asyncFlag) Set() { f.set.Store(true) }

// TestAndClear reports whether the flag was pending, clearing it atomically
// so a concurrent Set racing with this call is never lost: either it
// happens-before this call (observed here) or after (observed next call).
func (f *asyncFlag) TestAndClear() bool { return f.set.Swap(false) }

// asyncNotify is the loop-wide companion to each waiter's asyncFlag: a
// single flag AsyncNotify can set to ensure a blocked Host.Wait is
// eventually revisited even if the Host has no Waker to interrupt it
// immediately. The per-waiter flag identifies which waiter(s) fired; this
// flag only signals "something changed, re-check the waiters".
type asyncNotify struct {
	pending atomic.Bool
}

func (n *asyncNotify) Set() { n.pending.Store(true) }

func (n *asyncNotify) TestAndClear() bool { return n.pending.Swap(false) }
