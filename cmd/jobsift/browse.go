package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobsift/internal/browse"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/triage"
)

var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Browse classified jobs interactively (TUI)",
	Long: "Shows the category picker, then a scrollable list of that category's jobs with a detail view. " +
		"Naming a category (accepted, rejected, no_description, other) skips the picker.",
	Args: cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	start, err := startCategory(args)
	if err != nil {
		return err
	}

	// Log output before the alt-screen starts corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores, err := triage.LoadStores(cfg.Files, silentLogger)
	if err != nil {
		return err
	}

	if err := browse.Run(stores, start); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// startCategory returns the category named on the command line, or "" to show
// the picker.
func startCategory(args []string) (model.Category, error) {
	if len(args) == 0 {
		return "", nil
	}
	return model.ParseCategory(args[0])
}
