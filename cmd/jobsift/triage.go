package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobsift/internal/console"
	"github.com/amishk599/jobsift/internal/triage"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Classify fetched jobs one at a time",
	Long: "Shows every fetched job that has not been classified yet and asks whether to " +
		"accept (Y), reject (N) or keep it as other (O). Each answer is saved immediately.",
	Args: cobra.NoArgs,
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)
}

func runTriage(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	jobs, err := triage.LoadJobs(cfg.Files.Jobs)
	if err != nil {
		return fmt.Errorf("%w (run `jobsift fetch` first)", err)
	}
	stores, err := triage.LoadStores(cfg.Files, logger)
	if err != nil {
		return err
	}

	con := console.NewTerminal(os.Stdout)
	session := triage.NewSession(cfg.Files, cmd.InOrStdin(), con, logger)

	stores, err = session.Run(cmd.Context(), jobs, stores)
	if errors.Is(err, triage.ErrInputClosed) {
		con.Println(console.Muted, "Input closed; progress saved. %d jobs left to triage.", len(triage.Pending(jobs, stores)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("triage: %w", err)
	}

	con.Println(console.Success, "All jobs triaged.")
	return nil
}
