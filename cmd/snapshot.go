package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ptxxdxxd/ascii-telescope/internal/archive"
	"github.com/ptxxdxxd/ascii-telescope/internal/render"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch and print a single solar frame (non-interactive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		client := solar.NewClient(&http.Client{}, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := client.Fetch(ctx, cfg.Fetch.Sources, cfg.Fetch.SourceTimeout.Duration)
		if err != nil {
			return err
		}

		frame, err := render.Render(res.Grid, cfg.RenderConfig())
		if err != nil {
			return err
		}

		if cfg.Archive.Enabled {
			store := archive.NewStore(cfg.Archive.Dir)
			path, err := store.Save(res.Raw, res.Source.Name, res.FetchedAt)
			if err != nil {
				logger.Warn("archive save failed", "error", err)
			} else {
				logger.Info("saved original image", "path", path)
			}
		}

		fmt.Printf("Source: %s\n", res.Source.Name)
		fmt.Printf("Fetched: %s\n\n", res.FetchedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Println(frame.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
