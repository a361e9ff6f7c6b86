// Package query evaluates structural (CSS) and ordered (XPath) expressions
// against a dom.Tree snapshot.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"pinpoint/dom"
)

// Family identifies an expression grammar.
type Family int

const (
	CSS Family = iota
	XPath
)

func (f Family) String() string {
	if f == XPath {
		return "xpath"
	}
	return "css"
}

// ParseFamily maps "css" or "xpath" to a Family.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "css", "":
		return CSS, nil
	case "xpath":
		return XPath, nil
	}
	return CSS, fmt.Errorf("unknown expression family %q", s)
}

// ErrQueryFailure is returned for malformed expressions.
var ErrQueryFailure = errors.New("query failure")

// Queryable evaluates expressions and returns matches in document order.
type Queryable interface {
	Query(family Family, expr string) ([]*dom.Node, error)
}

// Document is the Queryable view of a tree, rooted at an optional scope.
type Document struct {
	tree  *dom.Tree
	scope *html.Node
}

// NewDocument returns a Queryable over tree. A nil scope queries the whole
// document.
func NewDocument(tree *dom.Tree, scope *dom.Node) *Document {
	d := &Document{tree: tree, scope: tree.Document()}
	if scope != nil {
		d.scope = scope.Raw()
	}
	return d
}

// Query evaluates expr and maps the results back to snapshot nodes.
func (d *Document) Query(family Family, expr string) ([]*dom.Node, error) {
	raws, err := Select(d.scope, family, expr)
	if err != nil {
		return nil, err
	}
	return d.tree.LookupAll(raws), nil
}

// Select evaluates expr under root. Evaluator panics are converted to
// ErrQueryFailure.
func Select(root *html.Node, family Family, expr string) (nodes []*html.Node, err error) {
	if root == nil || strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrQueryFailure)
	}
	defer func() {
		if r := recover(); r != nil {
			nodes = nil
			err = fmt.Errorf("%w: %s: %v", ErrQueryFailure, expr, r)
		}
	}()

	switch family {
	case XPath:
		exp, err := xpath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrQueryFailure, expr, err)
		}
		return htmlquery.QuerySelectorAll(root, exp), nil
	default:
		sel, err := cascadia.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrQueryFailure, expr, err)
		}
		return goquery.NewDocumentFromNode(root).FindMatcher(sel).Nodes, nil
	}
}
