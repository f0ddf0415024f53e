package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptxxdxxd/ascii-telescope/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "telescope",
	Short: "Live solar observations rendered as ASCII in your terminal",
	Long: `ASCII Telescope fetches the latest solar disk image from NASA and
NOAA imagery endpoints, falling back across sources when one is down,
and renders it as ASCII art on a fixed refresh interval.

Run without arguments to launch the live dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
}

func loadConfig() (config.Config, error) {
	if cfgPath != "" {
		return config.LoadFrom(cfgPath)
	}
	return config.Load()
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
