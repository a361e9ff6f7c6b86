package locator

import (
	"fmt"
	"strings"

	"pinpoint/dom"
)

// semanticAttrs are attribute names that usually carry author intent.
var semanticAttrs = []string{"name", "data-testid", "data-test", "aria-label", "title", "type", "role"}

// Seeds derives the atomic structural predicates for n, in emission order:
// id, classes, semantic attributes, anchor href, tag, sibling position.
// Later seeds are cheaper fallbacks; the positional seed is always present
// when n has a parent.
func Seeds(n *dom.Node, cfg Config) []string {
	cfg = cfg.withDefaults()
	var seeds []string

	if len(n.ID) >= cfg.MinSeedLength && IsValidID(n.ID, cfg.GenericIDs) {
		seeds = append(seeds, "#"+EscapeCSS(n.ID))
	}

	for _, class := range n.Classes {
		if len(class) >= cfg.MinSeedLength && cfg.AcceptClass(class) {
			seeds = append(seeds, "."+EscapeCSS(class))
		}
	}

	for _, attr := range semanticAttrs {
		if v, ok := n.Attr(attr); ok && v != "" && len(v) >= cfg.MinSeedLength {
			seeds = append(seeds, attrSeed(attr, v))
		}
	}

	if n.Tag == "a" {
		if href, ok := n.Attr("href"); ok && href != "" &&
			!strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:") {
			seeds = append(seeds, attrSeed("href", href))
		}
	}

	if cfg.AcceptTag(n.Tag) {
		seeds = append(seeds, n.Tag)
	}

	if n.Parent != nil {
		seeds = append(seeds, fmt.Sprintf(":nth-child(%d)", n.Index))
	}
	return seeds
}

func attrSeed(attr, value string) string {
	return fmt.Sprintf(`[%s="%s"]`, attr, EscapeCSS(value))
}
