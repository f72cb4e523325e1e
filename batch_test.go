package ioloop

import "testing"

func TestBatchReservesClockSlot(t *testing.T) {
	b := newBatch(4)
	if b.len() != 0 {
		t.Fatalf("len() = %d, want 0", b.len())
	}
	if b.subs[0].Kind != SubClock {
		t.Fatal("slot 0 must be the reserved clock subscription")
	}
}

func TestBatchAddRemoveSwapsLastIntoHole(t *testing.T) {
	b := newBatch(4)
	x := &Completion{}
	y := &Completion{}
	z := &Completion{}

	if !b.add(Subscription{FD: 1}, x) {
		t.Fatal("add x failed")
	}
	if !b.add(Subscription{FD: 2}, y) {
		t.Fatal("add y failed")
	}
	if !b.add(Subscription{FD: 3}, z) {
		t.Fatal("add z failed")
	}
	if b.len() != 3 {
		t.Fatalf("len() = %d, want 3", b.len())
	}

	b.remove(x) // slot 1; z (the last occupied slot) should move into it
	if b.len() != 2 {
		t.Fatalf("len() after remove = %d, want 2", b.len())
	}
	if z.batchIndex != 1 {
		t.Fatalf("z.batchIndex = %d, want 1 (swapped into x's hole)", z.batchIndex)
	}
	if b.subs[1].FD != 3 {
		t.Fatalf("slot 1 FD = %d, want 3", b.subs[1].FD)
	}
	if x.batchIndex != 0 {
		t.Fatalf("removed Completion's batchIndex = %d, want 0", x.batchIndex)
	}
}

func TestBatchFullWhenNonReservedSlotsExhausted(t *testing.T) {
	b := newBatch(1)
	if !b.add(Subscription{FD: 1}, &Completion{}) {
		t.Fatal("first add should succeed")
	}
	if b.add(Subscription{FD: 2}, &Completion{}) {
		t.Fatal("second add should fail: only one non-reserved slot was requested")
	}
}
