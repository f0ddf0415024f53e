package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptxxdxxd/ascii-telescope/internal/notify"
	"github.com/ptxxdxxd/ascii-telescope/internal/render"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
	"github.com/ptxxdxxd/ascii-telescope/internal/watch"
)

const (
	headerLines = 3 // header + subheader + separator
	footerLines = 2 // notification bar + status bar
)

// refresher is the part of the watcher the dashboard drives.
type refresher interface {
	TriggerNow()
}

// Messages

type cycleMsg struct {
	update watch.Update
}

type tickMsg time.Time

// Options holds the display parameters the dashboard needs beyond the
// update stream itself.
type Options struct {
	FrameWidth      int
	FrameHeight     int
	RefreshInterval time.Duration
}

// Dashboard is the main Bubble Tea model: a live solar frame with
// source, countdown, and fetch-event chrome around it.
type Dashboard struct {
	watcher   refresher
	updates   <-chan watch.Update
	feed      *notify.Feed
	bell      *notify.Bell
	opts      Options
	frame     render.Frame
	source    solar.Source
	fetchedAt time.Time
	health    map[string]watch.SourceHealth
	next      time.Time
	width     int
	height    int
	loading   bool
	paused    bool
	lastErr   string
	err       error
}

// NewDashboard creates the dashboard model.
func NewDashboard(watcher refresher, updates <-chan watch.Update, feed *notify.Feed, bell *notify.Bell, opts Options) Dashboard {
	return Dashboard{
		watcher: watcher,
		updates: updates,
		feed:    feed,
		bell:    bell,
		opts:    opts,
		loading: true,
	}
}

// Err returns any fatal error that occurred.
func (d Dashboard) Err() error {
	return d.err
}

// Init arms the update reader and the countdown tick.
func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(d.waitForUpdate(), tick())
}

func (d Dashboard) waitForUpdate() tea.Cmd {
	updates := d.updates
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return cycleMsg{update: u}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return d.handleKey(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case cycleMsg:
		d.applyUpdate(msg.update)
		return d, d.waitForUpdate()

	case tickMsg:
		return d, tick()
	}

	return d, nil
}

func (d Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit

	case "r":
		d.loading = true
		d.watcher.TriggerNow()
		return d, nil

	case "p":
		d.paused = !d.paused
		if d.paused {
			d.bell.Suspend()
		} else {
			d.bell.Resume()
		}
		return d, nil
	}

	return d, nil
}

func (d *Dashboard) applyUpdate(u watch.Update) {
	d.loading = false
	d.health = u.Health
	now := time.Now()
	d.next = now.Add(d.opts.RefreshInterval)

	if u.Err != nil {
		// Keep the previous frame on screen; surface the failure.
		d.lastErr = u.Err.Error()
		kind := notify.KindFailure
		var cerr *render.ConfigError
		if errors.As(u.Err, &cerr) {
			kind = notify.KindConfig
		}
		d.feed.Push(notify.Event{Kind: kind, Detail: summarize(u.Err), Timestamp: now})
		d.bell.Ring(kind, now)
		return
	}

	if d.paused {
		// Frozen display: track nothing visible, keep consuming.
		return
	}

	if d.lastErr != "" {
		d.feed.ClearKind(notify.KindFailure)
		d.feed.Push(notify.Event{Kind: notify.KindRecovered, Source: u.Source.Name, Detail: "fetch succeeded", Timestamp: now})
	}
	if u.FellBack() {
		d.feed.Push(notify.Event{
			Kind:      notify.KindFallback,
			Source:    u.Source.Name,
			Detail:    fmt.Sprintf("%d preferred sources failed", len(u.Attempts)),
			Timestamp: now,
		})
	}

	d.lastErr = ""
	d.frame = u.Frame
	d.source = u.Source
	d.fetchedAt = u.FetchedAt
}

// View renders the dashboard.
func (d Dashboard) View() string {
	minW := d.opts.FrameWidth
	minH := d.opts.FrameHeight + headerLines + footerLines
	if d.width < minW || d.height < minH {
		return fmt.Sprintf("\n  Terminal too small (need %dx%d, got %dx%d)\n", minW, minH, d.width, d.height)
	}

	var b strings.Builder

	b.WriteString(d.renderHeader())
	b.WriteString("\n")
	b.WriteString(d.renderSubheader())
	b.WriteString("\n")
	b.WriteString(subheaderStyle.Render(strings.Repeat("─", d.width)))
	b.WriteString("\n")

	bodyHeight := d.height - headerLines - footerLines
	b.WriteString(d.renderFrame(bodyHeight))

	b.WriteString(d.renderNotificationBar())
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("  r:refresh now  p:pause  q:quit"))

	return b.String()
}

func (d Dashboard) renderHeader() string {
	title := headerStyle.Render("ASCII Telescope")

	failing := 0
	for _, h := range d.health {
		if h.ConsecFails > 0 {
			failing++
		}
	}
	right := ""
	if failing > 0 {
		right = badgeStyle.Render(fmt.Sprintf("[%d sources failing]", failing))
	}

	gap := d.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (d Dashboard) renderSubheader() string {
	switch {
	case d.paused:
		return pausedStyle.Render("  Paused")
	case d.loading:
		return subheaderStyle.Render("  Fetching...")
	case d.lastErr != "":
		return errorStyle.Render("  " + truncate(d.lastErr, d.width-4))
	case d.source.Name == "":
		return subheaderStyle.Render("  Waiting for first frame...")
	}

	line := "  Source: " + sourceStyle.Render(d.source.Name)
	if !d.fetchedAt.IsZero() {
		line += subheaderStyle.Render("  fetched " + d.fetchedAt.Format("15:04:05 MST"))
	}
	if !d.next.IsZero() {
		remaining := time.Until(d.next).Truncate(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		line += okStyle.Render(fmt.Sprintf("  next in %s", remaining))
	}
	return line
}

func (d Dashboard) renderFrame(height int) string {
	if d.frame == nil {
		return padLines("\n  No frame yet.\n", height)
	}

	// Center the frame horizontally.
	pad := (d.width - d.opts.FrameWidth) / 2
	if pad < 0 {
		pad = 0
	}
	indent := strings.Repeat(" ", pad)

	var b strings.Builder
	for _, row := range d.frame {
		b.WriteString(indent)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return padLines(b.String(), height)
}

func (d Dashboard) renderNotificationBar() string {
	line := d.feed.Render(d.width-4, time.Now())
	if line == "" {
		return notificationBarStyle.Render("")
	}
	return notificationBarStyle.Render("  " + line)
}

// Helpers

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}

func padLines(content string, height int) string {
	lines := strings.Count(content, "\n")
	padding := height - lines
	if padding > 0 {
		content += strings.Repeat("\n", padding)
	}
	return content
}

// summarize keeps multi-source failure text short enough for the feed.
func summarize(err error) string {
	var failure *solar.FetchFailure
	if errors.As(err, &failure) {
		return fmt.Sprintf("all %d sources failed", len(failure.Attempts))
	}
	return err.Error()
}
