package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/amishk599/jobsift/internal/console"
	"github.com/amishk599/jobsift/internal/filter"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/scrape"
	"github.com/amishk599/jobsift/internal/store"
)

// Stats summarises one fetch run.
type Stats struct {
	Found     int // entries parsed from the listing page
	Described int // detail pages that yielded a description
	Missing   int // detail pages that failed or had no body
	Existing  int // jobs already in the output store
	New       int // jobs not seen before this run
	Written   int // jobs written to the output
}

// Collector owns the fetch pipeline for a listing page:
// fetch listing → parse → fetch each detail → dedup against the store → write.
type Collector struct {
	fetcher   model.PageFetcher
	listing   scrape.ListingSelectors
	detail    scrape.DetailSelectors
	highlight func(string) string
	con       *console.Console
	logger    *slog.Logger
}

// New creates a collector wired with all its dependencies. highlight wraps
// section headings inside descriptions.
func New(
	fetcher model.PageFetcher,
	listing scrape.ListingSelectors,
	detail scrape.DetailSelectors,
	highlight func(string) string,
	con *console.Console,
	logger *slog.Logger,
) *Collector {
	return &Collector{
		fetcher:   fetcher,
		listing:   listing,
		detail:    detail,
		highlight: highlight,
		con:       con,
		logger:    logger,
	}
}

// Collect fetches the listing page at listingURL and then every job's detail
// page, one at a time. A listing failure is returned; a detail failure only
// leaves that job's description nil.
func (c *Collector) Collect(ctx context.Context, listingURL string) ([]model.Job, Stats, error) {
	var stats Stats

	base, err := parseListingURL(listingURL)
	if err != nil {
		return nil, stats, err
	}

	c.con.Println(console.Progress, "Fetching job list ....")
	body, err := c.fetcher.FetchPage(ctx, base.String())
	if err != nil {
		return nil, stats, fmt.Errorf("fetching listing %s: %w", listingURL, err)
	}

	jobs, err := scrape.ParseListing(body, base, c.listing)
	if err != nil {
		return nil, stats, fmt.Errorf("fetching listing %s: %w", listingURL, err)
	}
	stats.Found = len(jobs)
	c.con.Println(console.Success, "Found %d jobs", len(jobs))
	c.logger.Debug("parsed listing", "url", listingURL, "jobs", len(jobs))

	c.con.Println(console.Progress, "Getting job descriptions...")
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("fetching descriptions: %w", err)
		}

		c.con.Print(console.Progress, "Getting job descriptions... %d/%d", i+1, len(jobs))

		desc, err := c.describe(ctx, jobs[i].Link)
		switch {
		case err == nil:
			jobs[i].Description = &desc
			stats.Described++
			c.con.Println(console.Success, " (Description fetched)")
		case ctx.Err() != nil || errors.Is(err, context.Canceled):
			c.con.Raw("")
			return nil, stats, fmt.Errorf("fetching descriptions: %w", err)
		case errors.Is(err, model.ErrNoBody):
			stats.Missing++
			c.con.Println(console.Failure, " (Descriptions missing: %d)", stats.Missing)
			c.logger.Debug("detail page has no body", "link", jobs[i].Link)
		default:
			stats.Missing++
			c.con.Println(console.Failure, " (Failed due to an unexpected error: %v)", err)
			c.logger.Debug("detail fetch failed", "link", jobs[i].Link, "error", err)
		}
	}

	return jobs, stats, nil
}

func (c *Collector) describe(ctx context.Context, link string) (string, error) {
	body, err := c.fetcher.FetchPage(ctx, link)
	if err != nil {
		return "", err
	}
	return scrape.ParseDetail(body, c.detail, c.highlight)
}

// Update runs Collect and merges the result into the store at existingPath:
// only jobs whose link is not already stored are kept, and w receives just
// those new jobs. With keepExisting, w receives the stored jobs followed by
// the new ones instead, and a malformed store is refused rather than replaced.
func (c *Collector) Update(ctx context.Context, listingURL, existingPath string, w model.JobWriter, keepExisting bool) (Stats, error) {
	existing, err := store.LoadOrEmpty(existingPath)
	switch {
	case errors.Is(err, store.ErrMalformed) && keepExisting:
		return Stats{}, fmt.Errorf("keeping existing jobs: %w (fix or move %s first)", err, existingPath)
	case errors.Is(err, store.ErrMalformed):
		c.logger.Warn("existing job store is malformed, treating as empty", "path", existingPath, "error", err)
	case err != nil:
		return Stats{}, fmt.Errorf("loading existing jobs: %w", err)
	}

	fresh, stats, err := c.Collect(ctx, listingURL)
	if err != nil {
		return stats, err
	}

	stats.Existing = len(existing)
	c.con.Println(console.Plain, "existing jobs: %d", len(existing))

	newJobs := filter.Unseen(fresh, filter.NewLinkSet(existing))
	stats.New = len(newJobs)
	c.con.Println(console.Plain, "new jobs: %d", len(newJobs))

	out := newJobs
	if keepExisting {
		out = append(append(make([]model.Job, 0, len(existing)+len(newJobs)), existing...), newJobs...)
	}

	if err := w.WriteJobs(out); err != nil {
		c.con.Println(console.Failure, "Error writing jobs: %v", err)
		return stats, fmt.Errorf("writing jobs: %w", err)
	}
	stats.Written = len(out)

	return stats, nil
}

func parseListingURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid listing URL %q: want an absolute http(s) URL", raw)
	}
	return u, nil
}
