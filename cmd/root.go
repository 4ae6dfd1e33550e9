// Package cmd defines the mini-library command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mini-library/config"
	"mini-library/library"
)

var rootCmd = &cobra.Command{
	Use:   "mini-library",
	Short: "Mini Library Manager: catalog your books and who borrowed them",
	Long: `Mini Library Manager keeps a small personal book catalog persisted
as JSON documents.

The console subcommand runs a single-user retro menu over the shared
catalog; the web subcommand serves a multi-user web UI where each
registered account gets its own catalog behind a login.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and opens the data directory.
func setup() (*config.Config, *library.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := library.NewManager(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open data dir: %w", err)
	}
	return cfg, mgr, nil
}
