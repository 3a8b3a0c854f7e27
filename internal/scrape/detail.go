package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobsift/internal/model"
)

// DetailSelectors locate the description on a job detail page.
type DetailSelectors struct {
	Body    string // main article element
	Heading string // subsection headings inside Body
}

// ParseDetail extracts the description text from detail page HTML. Text nodes
// are joined one per line. The first literal occurrence of each heading's text
// is wrapped with highlight. Returns model.ErrNoBody when Body matches nothing.
func ParseDetail(body []byte, sel DetailSelectors, highlight func(string) string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse detail: %w", err)
	}

	article := doc.Find(sel.Body).First()
	if article.Length() == 0 {
		return "", model.ErrNoBody
	}

	description := nodeText(article.Get(0), "\n")
	if highlight == nil || sel.Heading == "" {
		return description, nil
	}

	var headings []string
	seen := make(map[string]bool)
	article.Find(sel.Heading).Each(func(_ int, h *goquery.Selection) {
		text := nodeText(h.Get(0), "\n")
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		headings = append(headings, text)
	})

	return highlightHeadings(description, headings, highlight), nil
}

// highlightHeadings replaces the first literal occurrence of each heading in
// text with its highlighted form. Replacements are applied to the unmarked
// segments only, so a heading that is a substring of an earlier one never
// lands inside an existing marker.
func highlightHeadings(text string, headings []string, highlight func(string) string) string {
	type segment struct {
		text   string
		marked bool
	}
	segs := []segment{{text: text}}

	for _, h := range headings {
		for i, s := range segs {
			if s.marked {
				continue
			}
			idx := strings.Index(s.text, h)
			if idx < 0 {
				continue
			}
			replaced := []segment{
				{text: s.text[:idx]},
				{text: highlight(h), marked: true},
				{text: s.text[idx+len(h):]},
			}
			segs = append(segs[:i], append(replaced, segs[i+1:]...)...)
			break
		}
	}

	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}
