package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText collects the text nodes under n in document order, trims each,
// drops the empty ones and joins the rest with sep. Script and style content
// is skipped.
func nodeText(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}

// collapse squeezes all runs of whitespace to a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
