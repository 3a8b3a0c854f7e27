package model

import (
	"context"
	"fmt"
	"strings"
)

// Job is a single listing scraped from a job board. Link is its identity.
type Job struct {
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description *string `json:"description"` // nil when the detail page could not be read
}

// HasDescription reports whether the job carries a description to show during triage.
func (j Job) HasDescription() bool {
	return j.Description != nil
}

// Category is one of the four disjoint triage outcomes.
type Category string

const (
	CategoryAccepted      Category = "accepted"
	CategoryRejected      Category = "rejected"
	CategoryNoDescription Category = "no_description"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAccepted,
	CategoryRejected,
	CategoryNoDescription,
	CategoryOther,
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryAccepted:
		return "Accepted"
	case CategoryRejected:
		return "Rejected"
	case CategoryNoDescription:
		return "No description"
	case CategoryOther:
		return "Other interested"
	default:
		return string(c)
	}
}

// ParseCategory maps a category name, as typed on the command line, to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ParseDecision maps a triage answer to a category. Only y, n and o are valid
// (case-insensitive); no-description is never chosen by the user.
func ParseDecision(answer string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y":
		return CategoryAccepted, true
	case "n":
		return CategoryRejected, true
	case "o":
		return CategoryOther, true
	default:
		return "", false
	}
}

// PageFetcher retrieves the raw body of a web page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// JobWriter persists a job list to the fetch output.
type JobWriter interface {
	WriteJobs(jobs []Job) error
}
