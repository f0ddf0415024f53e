package notify

import (
	"fmt"
	"os"
	"time"
)

// Bell manages terminal bell notifications with debounce and suspension.
type Bell struct {
	debounce  time.Duration
	lastRing  time.Time
	suspended bool
	triggerOn map[string]bool
}

// NewBell creates a Bell with the given debounce interval and trigger
// event kinds.
func NewBell(debounce time.Duration, kinds []string) *Bell {
	triggerOn := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		triggerOn[k] = true
	}
	return &Bell{
		debounce:  debounce,
		triggerOn: triggerOn,
	}
}

// Ring attempts to ring the terminal bell for the given event kind.
// Returns true if the bell actually rang.
func (b *Bell) Ring(kind string, now time.Time) bool {
	if b.suspended {
		return false
	}
	if !b.triggerOn[kind] {
		return false
	}
	if now.Sub(b.lastRing) < b.debounce {
		return false
	}

	fmt.Fprint(os.Stderr, "\a")
	b.lastRing = now
	return true
}

// Suspend disables bell ringing (while the display is paused).
func (b *Bell) Suspend() {
	b.suspended = true
}

// Resume re-enables bell ringing.
func (b *Bell) Resume() {
	b.suspended = false
}

// IsSuspended returns whether the bell is currently suspended.
func (b *Bell) IsSuspended() bool {
	return b.suspended
}
