package ioloop

import "container/heap"

// timerEntry is one Completion parked in the timer heap, ordered by absolute
// deadline with insertion sequence as a deterministic tie-break.
type timerEntry struct {
	deadlineNs int64
	seq        uint64
	c          *Completion
}

// timerHeap is a container/heap min-heap over timerEntry, ordered soonest
// deadline first. Every Completion tracks its own heapIndex so an
// active timer can be removed in O(log n) for cancellation, without a
// linear scan.
type timerHeap struct {
	entries []*timerEntry
	nextSeq uint64
}

func (h *timerHeap) Len() int { return len(h.entries) }

func (h *timerHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.deadlineNs != b.deadlineNs {
		return a.deadlineNs < b.deadlineNs
	}
	return a.seq < b.seq
}

func (h *timerHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].c.heapIndex = i
	h.entries[j].c.heapIndex = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.c.heapIndex = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *timerHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.entries = old[:n-1]
	e.c.heapIndex = -1
	return e
}

// push parks c in the heap for the given absolute deadline, setting
// c.inHeap.
func (h *timerHeap) push(c *Completion, deadlineNs int64) {
	h.nextSeq++
	e := &timerEntry{deadlineNs: deadlineNs, seq: h.nextSeq, c: c}
	c.inHeap = true
	heap.Push(h, e)
}

// peek returns the soonest-deadline entry without removing it, or nil if the
// heap is empty.
func (h *timerHeap) peek() *timerEntry {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[0]
}

// popExpired removes and returns the soonest-deadline entry, clearing
// c.inHeap. The caller is responsible for checking its deadline first via
// peek.
func (h *timerHeap) popExpired() *timerEntry {
	e := heap.Pop(h).(*timerEntry)
	e.c.inHeap = false
	return e
}

// removeCompletion removes c from the heap ahead of its natural expiration,
// used to service a cancel of a still-active timer. It is a no-op if c is
// not currently in the heap.
func (h *timerHeap) removeCompletion(c *Completion) {
	if !c.inHeap {
		return
	}
	heap.Remove(h, c.heapIndex)
	c.inHeap = false
}
