package locator

import (
	"strings"
	"testing"

	"pinpoint/dom"
	"pinpoint/query"
)

func mustTree(t *testing.T, src string) *dom.Tree {
	t.Helper()
	tree, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

// pick returns the single node matched by a CSS expression.
func pick(t *testing.T, tree *dom.Tree, css string) *dom.Node {
	t.Helper()
	nodes, err := query.NewDocument(tree, nil).Query(query.CSS, css)
	if err != nil {
		t.Fatalf("query %q: %v", css, err)
	}
	if len(nodes) != 1 {
		t.Fatalf("query %q: expected 1 node, got %d", css, len(nodes))
	}
	return nodes[0]
}

// nest wraps inner in n plain divs.
func nest(n int, inner string) string {
	return strings.Repeat("<div>", n) + inner + strings.Repeat("</div>", n)
}

func sameNodes(a, b []*dom.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
