package notify

import (
	"testing"
	"time"
)

func TestBell_RingOnTriggerKind(t *testing.T) {
	b := NewBell(30*time.Second, []string{KindFailure, KindConfig})
	now := time.Now()

	if !b.Ring(KindFailure, now) {
		t.Error("FAILURE should trigger bell")
	}
}

func TestBell_NoRingOnNonTriggerKind(t *testing.T) {
	b := NewBell(30*time.Second, []string{KindFailure})
	now := time.Now()

	if b.Ring(KindFallback, now) {
		t.Error("FALLBACK should not trigger bell")
	}
	if b.Ring(KindRecovered, now) {
		t.Error("RECOVERED should not trigger bell")
	}
}

func TestBell_Debounce(t *testing.T) {
	b := NewBell(30*time.Second, []string{KindFailure})
	now := time.Now()

	if !b.Ring(KindFailure, now) {
		t.Error("first ring should succeed")
	}
	if b.Ring(KindFailure, now.Add(10*time.Second)) {
		t.Error("ring within debounce window should be suppressed")
	}
	if !b.Ring(KindFailure, now.Add(31*time.Second)) {
		t.Error("ring after debounce window should succeed")
	}
}

func TestBell_Suspended(t *testing.T) {
	b := NewBell(30*time.Second, []string{KindFailure})
	now := time.Now()

	b.Suspend()
	if b.Ring(KindFailure, now) {
		t.Error("bell should not ring while suspended")
	}
	if !b.IsSuspended() {
		t.Error("IsSuspended should be true")
	}

	b.Resume()
	if b.IsSuspended() {
		t.Error("IsSuspended should be false after resume")
	}
}
