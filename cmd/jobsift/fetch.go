package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobsift/internal/collector"
	"github.com/amishk599/jobsift/internal/console"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/scrape"
	"github.com/amishk599/jobsift/internal/store"
)

const urlPrompt = "Please enter the Bright Network page with the roles you're interested in, " +
	"e.g. https://www.brightnetwork.co.uk/application-deadlines/jobs/graduate-schemes/technology/: "

var (
	fetchURL     string
	keepExisting bool
	fetchDryRun  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch job listings into the job store",
	Long: "Fetches a listing page, then each job's detail page, and writes the jobs " +
		"not already in the job store. Asks for the listing URL unless --url is given.",
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "listing page URL (skips the prompt)")
	fetchCmd.Flags().BoolVar(&keepExisting, "keep-existing", false, "write stored jobs plus new ones instead of only new ones")
	fetchCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "fetch and report, but do not write the job store")
	rootCmd.AddCommand(fetchCmd)
}

// outputWriter is a JobWriter that can name its destination.
type outputWriter interface {
	model.JobWriter
	Path() string
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = logger.With("run_id", uuid.NewString())

	con := console.NewTerminal(os.Stdout)

	listingURL := fetchURL
	if listingURL == "" {
		listingURL, err = promptURL(cmd.InOrStdin(), con)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var w outputWriter = store.NewFileWriter(cfg.Files.Jobs)
	if fetchDryRun {
		w = store.NewNopWriter()
	}

	c := collector.New(
		buildFetcher(cfg, logger),
		scrape.ListingSelectors{
			Item:    cfg.Selectors.ListingItem,
			Company: cfg.Selectors.Company,
			Link:    cfg.Selectors.Link,
		},
		scrape.DetailSelectors{
			Body:    cfg.Selectors.DetailBody,
			Heading: cfg.Selectors.Heading,
		},
		console.HeadingMarker(),
		con,
		logger,
	)

	logger.Debug("fetch starting", "url", listingURL, "output", w.Path(), "keep_existing", keepExisting)

	stats, err := c.Update(ctx, listingURL, cfg.Files.Jobs, w, keepExisting)
	if errors.Is(err, context.Canceled) {
		con.Println(console.Failure, "Interrupted; nothing was written.")
		return err
	}
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if fetchDryRun {
		con.Println(console.Muted, "Dry run: %d jobs would be written to %s", stats.Written, cfg.Files.Jobs)
	} else {
		con.Println(console.Success, "Successfully updated %s", w.Path())
	}
	logger.Info("fetch complete",
		"found", stats.Found,
		"described", stats.Described,
		"missing", stats.Missing,
		"new", stats.New,
		"written", stats.Written,
	)
	return nil
}

// promptURL reads the listing URL from in.
func promptURL(in io.Reader, con *console.Console) (string, error) {
	con.Println(console.Plain, "%s", urlPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading listing URL: %w", err)
	}
	u := strings.TrimSpace(line)
	if u == "" {
		return "", errors.New("no listing URL given")
	}
	return u, nil
}
