// Package extract previews what a locator would scrape: the text and link
// of the first few matches, and the real source of lazily loaded images.
package extract

import (
	"strings"
	"unicode/utf8"

	"pinpoint/dom"
)

// Preview defaults.
const (
	DefaultPreviewItems = 3
	maxPreviewText      = 30
	noText              = "(no text)"
)

// Item is one previewed match.
type Item struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Preview summarises the first limit nodes. A non-positive limit uses
// DefaultPreviewItems.
func Preview(tree *dom.Tree, nodes []*dom.Node, limit int) []Item {
	if limit <= 0 {
		limit = DefaultPreviewItems
	}
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, previewItem(tree, n))
	}
	return items
}

func previewItem(tree *dom.Tree, n *dom.Node) Item {
	s := n.Selection(tree)

	text := strings.Join(strings.Fields(s.Text()), " ")
	if utf8.RuneCountInString(text) > maxPreviewText {
		text = string([]rune(text)[:maxPreviewText]) + "..."
	}
	if text == "" {
		text = noText
	}

	// The item itself, else its first descendant link.
	var href string
	if n.Tag == "a" {
		href, _ = s.Attr("href")
	} else if link := s.Find("a").First(); link.Length() > 0 {
		href, _ = link.Attr("href")
	}
	return Item{Text: text, Href: href}
}
