package notify

import (
	"fmt"
	"time"
)

// Event kinds surfaced in the feed.
const (
	KindFallback  = "FALLBACK"  // a lower-fidelity source had to be used
	KindFailure   = "FAILURE"   // an entire fetch cycle failed
	KindRecovered = "RECOVERED" // a cycle succeeded after failures
	KindConfig    = "CONFIG"    // render misconfiguration, recurs every cycle
)

// Event is a single noteworthy occurrence in the refresh loop.
type Event struct {
	Kind      string
	Source    string // source name, empty for cycle-wide events
	Detail    string
	Timestamp time.Time
}

// Feed manages a FIFO queue of events for the notification bar.
type Feed struct {
	items    []Event
	maxStore int
}

// NewFeed creates a feed with the given buffer size.
func NewFeed(maxStore int) *Feed {
	return &Feed{
		items:    make([]Event, 0, maxStore),
		maxStore: maxStore,
	}
}

// Push adds an event, trimming oldest if at capacity.
func (f *Feed) Push(e Event) {
	f.items = append(f.items, e)
	if len(f.items) > f.maxStore {
		f.items = f.items[len(f.items)-f.maxStore:]
	}
}

// Visible returns the most recent events (max 2).
func (f *Feed) Visible() []Event {
	if len(f.items) <= 2 {
		return f.items
	}
	return f.items[len(f.items)-2:]
}

// ClearKind removes all events of the given kind, e.g. stale FAILURE
// entries once a cycle recovers.
func (f *Feed) ClearKind(kind string) {
	filtered := f.items[:0]
	for _, e := range f.items {
		if e.Kind != kind {
			filtered = append(filtered, e)
		}
	}
	f.items = filtered
}

// Len returns the total number of buffered events.
func (f *Feed) Len() int {
	return len(f.items)
}

// Render formats the visible events for display within the given width.
func (f *Feed) Render(width int, now time.Time) string {
	visible := f.Visible()
	if len(visible) == 0 {
		return ""
	}

	result := ""
	for i, e := range visible {
		if i > 0 {
			result += " │ "
		}
		result += formatEvent(e, now)
	}

	runes := []rune(result)
	if len(runes) > width {
		if width > 1 {
			result = string(runes[:width-1]) + "…"
		} else {
			result = string(runes[:width])
		}
	}

	return result
}

func formatEvent(e Event, now time.Time) string {
	age := now.Sub(e.Timestamp).Truncate(time.Second)
	var ageStr string
	if age < time.Minute {
		ageStr = fmt.Sprintf("%ds ago", int(age.Seconds()))
	} else if age < time.Hour {
		ageStr = fmt.Sprintf("%dm ago", int(age.Minutes()))
	} else {
		ageStr = fmt.Sprintf("%dh ago", int(age.Hours()))
	}

	if e.Source != "" {
		return fmt.Sprintf("● %s %s: %s (%s)", e.Kind, e.Source, e.Detail, ageStr)
	}
	return fmt.Sprintf("● %s: %s (%s)", e.Kind, e.Detail, ageStr)
}
