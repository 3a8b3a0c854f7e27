package triage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/amishk599/jobsift/internal/config"
	"github.com/amishk599/jobsift/internal/filter"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/store"
)

// Stores holds the four category lists. It is a plain value: Classify returns
// an updated copy and never touches disk.
type Stores struct {
	Accepted      []model.Job
	Rejected      []model.Job
	NoDescription []model.Job
	Other         []model.Job
}

// Get returns the list for c.
func (s Stores) Get(c model.Category) []model.Job {
	switch c {
	case model.CategoryAccepted:
		return s.Accepted
	case model.CategoryRejected:
		return s.Rejected
	case model.CategoryNoDescription:
		return s.NoDescription
	case model.CategoryOther:
		return s.Other
	default:
		return nil
	}
}

// Links returns the union of links across all four lists.
func (s Stores) Links() *filter.LinkSet {
	return filter.NewLinkSet(s.Accepted, s.Rejected, s.NoDescription, s.Other)
}

// Counts returns the number of jobs per category.
func (s Stores) Counts() map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		counts[c] = len(s.Get(c))
	}
	return counts
}

// Pending returns the jobs that have not been classified into any store yet,
// in their original order.
func Pending(jobs []model.Job, s Stores) []model.Job {
	return filter.Unseen(jobs, s.Links())
}

// Classify returns a copy of s with job appended to category c. The lists in s
// are not modified.
func Classify(s Stores, job model.Job, c model.Category) Stores {
	add := func(list []model.Job) []model.Job {
		out := make([]model.Job, len(list), len(list)+1)
		copy(out, list)
		return append(out, job)
	}
	switch c {
	case model.CategoryAccepted:
		s.Accepted = add(s.Accepted)
	case model.CategoryRejected:
		s.Rejected = add(s.Rejected)
	case model.CategoryNoDescription:
		s.NoDescription = add(s.NoDescription)
	case model.CategoryOther:
		s.Other = add(s.Other)
	}
	return s
}

// LoadStores reads every category store named in files. Missing and malformed
// files load as empty (malformed ones are logged).
func LoadStores(files config.FilesConfig, logger *slog.Logger) (Stores, error) {
	var s Stores
	for _, c := range model.Categories {
		path := files.CategoryPath(c)
		jobs, err := store.LoadOrEmpty(path)
		if errors.Is(err, store.ErrMalformed) {
			logger.Warn("category store is malformed, treating as empty", "category", c, "path", path, "error", err)
		} else if err != nil {
			return Stores{}, fmt.Errorf("loading %s store: %w", c, err)
		}
		switch c {
		case model.CategoryAccepted:
			s.Accepted = jobs
		case model.CategoryRejected:
			s.Rejected = jobs
		case model.CategoryNoDescription:
			s.NoDescription = jobs
		case model.CategoryOther:
			s.Other = jobs
		}
	}
	return s, nil
}

// LoadJobs reads the fetched-jobs store. Unlike category stores it must exist
// and parse.
func LoadJobs(path string) ([]model.Job, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("loading fetched jobs: %w", err)
	}
	jobs, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading fetched jobs: %w", err)
	}
	return jobs, nil
}

// Summary reports triage progress for a fetched-jobs list.
type Summary struct {
	Counts  map[model.Category]int
	Fetched int
	Pending int
}

// Summarize counts classified and outstanding jobs.
func Summarize(jobs []model.Job, s Stores) Summary {
	return Summary{
		Counts:  s.Counts(),
		Fetched: len(jobs),
		Pending: len(Pending(jobs, s)),
	}
}
