package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/amishk599/jobsift/internal/config"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/ratelimit"
	"github.com/amishk599/jobsift/internal/retry"
	"github.com/amishk599/jobsift/internal/scrape"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Scrape a job board and triage the listings",
	Long: "jobsift fetches job listings from a job-board page into a JSON store, " +
		"then walks you through them one at a time, filing each into accepted, rejected or other.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./jobsift.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > ./jobsift.yaml > defaults
func loadConfig(path string) (*config.Config, error) {
	return config.Resolve(path)
}

// setupLogger logs to stderr so it never interleaves with prompts on stdout.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// buildFetcher assembles the page fetcher chain: retry → per-host rate limit → HTTP.
func buildFetcher(cfg *config.Config, logger *slog.Logger) model.PageFetcher {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	var fetcher model.PageFetcher = scrape.NewHTTPFetcher(httpClient, cfg.HTTP.UserAgent)
	fetcher = ratelimit.NewRateLimitedFetcher(fetcher, ratelimit.NewHostRateLimiter(cfg.HTTP.MinDelay))
	return retry.NewRetryFetcher(fetcher, cfg.HTTP.MaxRetries, cfg.HTTP.RetryBaseDelay, logger)
}
