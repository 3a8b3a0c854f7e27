package scrape

import (
	"net/url"
	"testing"
)

var defaultListing = ListingSelectors{Item: ".article-content li", Company: "span", Link: "a"}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestParseListing(t *testing.T) {
	page := `<html><body>
	<div class="article-content">
	  <ul>
	    <li><span> Acme  Corp </span> <a href="/graduate-jobs/acme/software-engineer">Software
	        Engineer</a></li>
	    <li><span>No Link Ltd</span> Data Analyst</li>
	    <li><a href="/graduate-jobs/orphan">Orphan Role</a></li>
	    <li><span>Empty Href</span><a href="">Broken</a></li>
	    <li><span>Beta</span><a href="https://jobs.beta.example/123">Backend Engineer</a></li>
	  </ul>
	</div>
	<ul><li><span>Outside</span><a href="/nope">Not in article</a></li></ul>
	</body></html>`

	base := mustURL(t, "https://www.brightnetwork.co.uk/application-deadlines/jobs/technology/")
	jobs, err := ParseListing([]byte(page), base, defaultListing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(jobs), jobs)
	}

	j := jobs[0]
	if j.Company != "Acme Corp" {
		t.Errorf("expected company Acme Corp, got %q", j.Company)
	}
	if j.Title != "Software Engineer" {
		t.Errorf("expected title Software Engineer, got %q", j.Title)
	}
	if j.Link != "https://www.brightnetwork.co.uk/graduate-jobs/acme/software-engineer" {
		t.Errorf("relative href not resolved: %s", j.Link)
	}
	if j.Description != nil {
		t.Errorf("expected nil description, got %q", *j.Description)
	}

	if jobs[1].Link != "https://jobs.beta.example/123" {
		t.Errorf("absolute href changed: %s", jobs[1].Link)
	}
}

func TestParseListing_RelativeToPath(t *testing.T) {
	page := `<div class="article-content"><li><span>Acme</span><a href="role-1">Role</a></li></div>`
	base := mustURL(t, "https://example.com/jobs/tech/")
	jobs, err := ParseListing([]byte(page), base, defaultListing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Link != "https://example.com/jobs/tech/role-1" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestParseListing_NoEntries(t *testing.T) {
	base := mustURL(t, "https://example.com/")
	jobs, err := ParseListing([]byte(`<html><body><p>nothing here</p></body></html>`), base, defaultListing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}
