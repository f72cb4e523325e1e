package ioloop

import "testing"

func TestTimerHeapOrdersByDeadlineThenInsertionOrder(t *testing.T) {
	h := &timerHeap{}
	a := &Completion{}
	b := &Completion{}
	c := &Completion{}

	h.push(a, 100)
	h.push(b, 50)
	h.push(c, 100) // same deadline as a, but inserted later: a must still win the tie

	if got := h.popExpired(); got.c != b {
		t.Fatalf("first pop: got %p, want b", got.c)
	}
	if got := h.popExpired(); got.c != a {
		t.Fatalf("second pop: got %p, want a (earlier insertion breaks the tie)", got.c)
	}
	if got := h.popExpired(); got.c != c {
		t.Fatalf("third pop: got %p, want c", got.c)
	}
	if h.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", h.Len())
	}
}

func TestTimerHeapRemoveCompletion(t *testing.T) {
	h := &timerHeap{}
	a := &Completion{}
	b := &Completion{}
	h.push(a, 10)
	h.push(b, 20)

	h.removeCompletion(a)
	if a.inHeap {
		t.Fatal("a.inHeap must be false after removeCompletion")
	}
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if got := h.peek(); got.c != b {
		t.Fatalf("remaining entry = %p, want b", got.c)
	}

	// removing an entry not in the heap is a no-op
	h.removeCompletion(a)
	if h.Len() != 1 {
		t.Fatalf("Len() after redundant remove = %d, want 1", h.Len())
	}
}
