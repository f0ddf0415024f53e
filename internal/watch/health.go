package watch

import "time"

// SourceHealth tracks how a single source has behaved across cycles.
// It is display information only: the fetcher itself is stateless and
// always tries sources in catalog order.
type SourceHealth struct {
	Name        string
	ConsecFails int
	LastSuccess time.Time
	LastError   string
}

// RecordSuccess resets the failure streak.
func (h *SourceHealth) RecordSuccess(now time.Time) {
	h.ConsecFails = 0
	h.LastSuccess = now
	h.LastError = ""
}

// RecordFailure extends the failure streak.
func (h *SourceHealth) RecordFailure(detail string, now time.Time) {
	h.ConsecFails++
	h.LastError = detail
}

// Healthy reports whether the source answered more recently than it failed.
func (h *SourceHealth) Healthy() bool {
	return h.ConsecFails == 0 && !h.LastSuccess.IsZero()
}
