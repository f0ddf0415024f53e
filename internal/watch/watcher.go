// Package watch drives the refresh loop: fetch, render, emit, sleep.
// One cycle fully completes before the next begins; no error here is
// ever fatal to the process.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ptxxdxxd/ascii-telescope/internal/archive"
	"github.com/ptxxdxxd/ascii-telescope/internal/render"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
)

// Config holds watcher configuration.
type Config struct {
	RefreshInterval time.Duration
	SourceTimeout   time.Duration
	Sources         []solar.Source
	Render          render.Config
	// Archive, when non-nil, receives the original bytes of every
	// successful fetch.
	Archive *archive.Store
}

// Update is emitted after every cycle, successful or not. On failure
// Frame is nil and Err carries a *solar.FetchFailure or *render.ConfigError;
// the previous frame stays valid on the caller's side.
type Update struct {
	Frame     render.Frame
	Source    solar.Source
	FetchedAt time.Time
	Attempts  []solar.Attempt
	SavedPath string
	Err       error
	Health    map[string]SourceHealth
}

// FellBack reports whether a lower-priority source had to be used.
func (u Update) FellBack() bool {
	return u.Err == nil && len(u.Attempts) > 0
}

// Watcher runs the fetch → render cycle on a fixed interval.
type Watcher struct {
	fetcher   solar.Fetcher
	cfg       Config
	logger    *slog.Logger
	health    map[string]*SourceHealth
	updateCh  chan Update
	triggerCh chan struct{}
	mu        sync.Mutex
}

// New creates a watcher. Call Start() to begin the loop.
func New(fetcher solar.Fetcher, cfg Config, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fetcher:   fetcher,
		cfg:       cfg,
		logger:    logger,
		health:    make(map[string]*SourceHealth),
		updateCh:  make(chan Update, 4),
		triggerCh: make(chan struct{}, 1),
	}
}

// Updates returns the channel that receives cycle results.
func (w *Watcher) Updates() <-chan Update {
	return w.updateCh
}

// Start begins the refresh loop in a goroutine. It stops when ctx is
// cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// TriggerNow requests an immediate cycle.
func (w *Watcher) TriggerNow() {
	select {
	case w.triggerCh <- struct{}{}:
	default:
		// Already triggered, skip
	}
}

func (w *Watcher) run(ctx context.Context) {
	// Initial cycle before the first tick
	w.cycle(ctx)

	ticker := time.NewTicker(w.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cycle(ctx)
		case <-w.triggerCh:
			w.cycle(ctx)
			// Reset the schedule after a manual refresh
			ticker.Reset(w.cfg.RefreshInterval)
		}
	}
}

func (w *Watcher) cycle(ctx context.Context) {
	res, err := w.fetcher.Fetch(ctx, w.cfg.Sources, w.cfg.SourceTimeout)
	if err != nil {
		var failure *solar.FetchFailure
		if errors.As(err, &failure) {
			w.recordAttempts(failure.Attempts)
			w.emit(Update{Err: err, Attempts: failure.Attempts, Health: w.snapshotHealth()})
		} else {
			w.emit(Update{Err: err, Health: w.snapshotHealth()})
		}
		w.logger.Warn("fetch cycle failed", "error", err)
		return
	}

	w.recordAttempts(res.Attempts)
	w.recordSuccess(res.Source, res.FetchedAt)

	frame, err := render.Render(res.Grid, w.cfg.Render)
	if err != nil {
		// ConfigError recurs every cycle; surface it but keep looping.
		w.logger.Error("render failed", "error", err)
		w.emit(Update{Err: err, Source: res.Source, Health: w.snapshotHealth()})
		return
	}

	savedPath := ""
	if w.cfg.Archive != nil {
		savedPath, err = w.cfg.Archive.Save(res.Raw, res.Source.Name, res.FetchedAt)
		if err != nil {
			w.logger.Warn("archive save failed", "error", err)
			savedPath = ""
		}
	}

	w.emit(Update{
		Frame:     frame,
		Source:    res.Source,
		FetchedAt: res.FetchedAt,
		Attempts:  res.Attempts,
		SavedPath: savedPath,
		Health:    w.snapshotHealth(),
	})
}

func (w *Watcher) recordAttempts(attempts []solar.Attempt) {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	for _, a := range attempts {
		w.healthFor(a.Source.Name).RecordFailure(a.Err.Error(), now)
	}
}

func (w *Watcher) recordSuccess(src solar.Source, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.healthFor(src.Name).RecordSuccess(at)
}

// healthFor must be called with the lock held.
func (w *Watcher) healthFor(name string) *SourceHealth {
	h, ok := w.health[name]
	if !ok {
		h = &SourceHealth{Name: name}
		w.health[name] = h
	}
	return h
}

func (w *Watcher) snapshotHealth() map[string]SourceHealth {
	w.mu.Lock()
	defer w.mu.Unlock()
	snapshot := make(map[string]SourceHealth, len(w.health))
	for k, v := range w.health {
		snapshot[k] = *v
	}
	return snapshot
}

func (w *Watcher) emit(u Update) {
	// Non-blocking send — if channel is full, drop oldest
	select {
	case w.updateCh <- u:
	default:
		select {
		case <-w.updateCh:
		default:
		}
		select {
		case w.updateCh <- u:
		default:
		}
	}
}
