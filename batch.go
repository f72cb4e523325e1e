package ioloop

// batch is the fixed-capacity table of in-flight fd Subscriptions the
// loop hands to Host.Wait each tick. Slot 0 is permanently reserved for the
// tick's own SubClock subscription; entries occupy slots [1, len) with no
// gaps, so a removal swaps the last occupied slot into the hole instead of
// leaving one.
//
// Timer-only and async-wait-only Completions never occupy a batch slot:
// timers are tracked by the timer heap, and async waiters are tracked by the
// waiters fifo; shutdown and close complete synchronously in Loop.start. Only
// accept/read/write/recv/send Completions (and, internally, the per-tick
// clock itself) are batched.
type batch struct {
	subs  []Subscription
	owner []*Completion
	cap   int
}

// newBatch constructs a batch with room for entries fd subscriptions
// plus the reserved clock slot.
func newBatch(entries int) *batch {
	if entries < 1 {
		entries = 1
	}
	cap := entries + 1
	b := &batch{
		subs:  make([]Subscription, 1, cap),
		owner: make([]*Completion, 1, cap),
		cap:   cap,
	}
	b.subs[0] = Subscription{Kind: SubClock}
	return b
}

// len reports the number of occupied fd slots, excluding the reserved
// clock slot.
func (b *batch) len() int { return len(b.subs) - 1 }

// full reports whether every non-reserved slot is occupied.
func (b *batch) full() bool { return len(b.subs) == b.cap }

// add appends a Subscription bound to owner, returning false if the batch
// has no free slot. On success it records owner.batchIndex.
func (b *batch) add(sub Subscription, owner *Completion) bool {
	if b.full() {
		return false
	}
	owner.batchIndex = len(b.subs)
	b.subs = append(b.subs, sub)
	b.owner = append(b.owner, owner)
	return true
}

// remove evicts the Subscription owned by c, swapping the last occupied
// slot into its place to keep the occupied range contiguous. c.batchIndex is
// reset to zero (meaning "not batched").
func (b *batch) remove(c *Completion) {
	i := c.batchIndex
	if i == 0 {
		return
	}
	last := len(b.subs) - 1
	if i != last {
		b.subs[i] = b.subs[last]
		b.owner[i] = b.owner[last]
		b.owner[i].batchIndex = i
	}
	b.subs = b.subs[:last]
	b.owner = b.owner[:last]
	c.batchIndex = 0
}

// setClockDeadline updates the reserved slot 0 subscription's deadline ahead
// of a Wait call.
func (b *batch) setClockDeadline(deadlineNs int64) {
	b.subs[0].DeadlineNs = deadlineNs
}
