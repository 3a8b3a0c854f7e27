package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/triage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many jobs are in each category",
	Long:  "Reads the job store and the category stores and prints a table of counts.",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	stores, err := triage.LoadStores(cfg.Files, logger)
	if err != nil {
		return err
	}
	// The job store is optional here: stats work before the first fetch.
	jobs, err := triage.LoadJobs(cfg.Files.Jobs)
	if err != nil {
		logger.Debug("job store unavailable", "error", err)
		jobs = nil
	}

	printStats(cmd.OutOrStdout(), cfg.Files.CategoryPath, triage.Summarize(jobs, stores))
	return nil
}

func printStats(w io.Writer, pathOf func(model.Category) string, sum triage.Summary) {
	fmt.Fprintf(w, "%-18s %-6s %s\n", "Category", "Jobs", "File")
	fmt.Fprintln(w, strings.Repeat("─", 52))

	total := 0
	for _, c := range model.Categories {
		n := sum.Counts[c]
		total += n
		fmt.Fprintf(w, "%-18s %-6d %s\n", c.Label(), n, pathOf(c))
	}

	fmt.Fprintf(w, "\nClassified: %d | fetched: %d | pending: %d\n", total, sum.Fetched, sum.Pending)
}
