package scrape

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobsift/internal/model"
)

// ListingSelectors locate job entries on a listing page.
type ListingSelectors struct {
	Item    string // one element per job entry
	Company string // first match inside Item holds the company name
	Link    string // first match inside Item holds the title and href
}

// ParseListing extracts jobs from listing page HTML. Relative hrefs are
// resolved against base. Entries missing a company, link or href are skipped.
// Descriptions are left nil.
func ParseListing(body []byte, base *url.URL, sel ListingSelectors) ([]model.Job, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var jobs []model.Job
	doc.Find(sel.Item).Each(func(_ int, item *goquery.Selection) {
		company := item.Find(sel.Company).First()
		link := item.Find(sel.Link).First()
		if company.Length() == 0 || link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		jobs = append(jobs, model.Job{
			Company: collapse(company.Text()),
			Title:   collapse(link.Text()),
			Link:    base.ResolveReference(ref).String(),
		})
	})

	return jobs, nil
}
