//go:build linux || darwin

package hostunix

import (
	"testing"
	"time"

	"github.com/pollring/ioloop"
)

func TestNowIsMonotonicallyNonDecreasing(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer h.Close()

	a := h.Now()
	b := h.Now()
	if b < a {
		t.Fatalf("Now() went backwards: %d then %d", a, b)
	}
}

func TestWaitReturnsOnOwnDeadline(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer h.Close()

	now := h.Now()
	subs := []ioloop.Subscription{{Kind: ioloop.SubClock, DeadlineNs: now + 1}}
	events, err := h.Wait(subs, nil)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no fd events for an empty batch, got %d", len(events))
	}
}

func TestWakeWaitInterruptsBlockedWait(t *testing.T) {
	h, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer h.Close()

	done := make(chan error, 1)
	go func() {
		now := h.Now()
		subs := []ioloop.Subscription{{Kind: ioloop.SubClock, DeadlineNs: now + int64(10e9)}}
		_, err := h.Wait(subs, nil)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond) // give the goroutine a chance to block in Wait
	if err := h.WakeWait(); err != nil {
		t.Fatalf("WakeWait() error: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait() was not interrupted by WakeWait()")
	}
}
