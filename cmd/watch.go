package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ptxxdxxd/ascii-telescope/internal/archive"
	"github.com/ptxxdxxd/ascii-telescope/internal/notify"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
	"github.com/ptxxdxxd/ascii-telescope/internal/tui"
	"github.com/ptxxdxxd/ascii-telescope/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Launch the live solar dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; keep slog quiet while it does.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := solar.NewClient(&http.Client{}, logger)

	var store *archive.Store
	if cfg.Archive.Enabled {
		store = archive.NewStore(cfg.Archive.Dir)
	}

	w := watch.New(client, watch.Config{
		RefreshInterval: cfg.Fetch.RefreshInterval.Duration,
		SourceTimeout:   cfg.Fetch.SourceTimeout.Duration,
		Sources:         cfg.Fetch.Sources,
		Render:          cfg.RenderConfig(),
		Archive:         store,
	}, logger)

	feed := notify.NewFeed(20)
	bell := notify.NewBell(30*time.Second, []string{
		notify.KindFailure, notify.KindConfig,
	})

	model := tui.NewDashboard(w, w.Updates(), feed, bell, tui.Options{
		FrameWidth:      cfg.Display.Width,
		FrameHeight:     cfg.Display.Height,
		RefreshInterval: cfg.Fetch.RefreshInterval.Duration,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	program := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := program.Run()
	cancel() // Stop the refresh loop
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	if m, ok := finalModel.(tui.Dashboard); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
