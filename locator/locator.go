// Package locator synthesizes short expressions that identify one node of a
// document, and relaxed expressions that match its structurally similar
// siblings.
//
// Every call runs synchronously against one tree snapshot and is bounded by
// the budgets in Config. Malformed candidate expressions are never surfaced:
// each strategy has a total fallback, so LocateSingle always returns some
// expression.
package locator

import (
	"log/slog"

	"pinpoint/dom"
	"pinpoint/query"
)

// Kind classifies how a candidate identifies its target.
type Kind int

const (
	KindStructural Kind = iota
	KindText
	KindAttribute
	KindPositional
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAttribute:
		return "attribute"
	case KindPositional:
		return "positional"
	}
	return "structural"
}

// Candidate is one synthesized expression with its penalty.
type Candidate struct {
	Expression string
	Family     query.Family
	Kind       Kind
	Penalty    float64
	Reason     string
	// NonUnique is set when the oracle could not confirm the expression
	// matches exactly the target.
	NonUnique bool
}

// Selection is the result of LocateSingle.
type Selection struct {
	Structural Candidate
	Ordered    Candidate
	Best       Candidate
}

// Locator runs the synthesis pipeline against a queryable tree.
type Locator struct {
	cfg    Config
	q      query.Queryable
	oracle *query.Oracle
	log    *slog.Logger
}

// New returns a Locator over q.
func New(q query.Queryable, cfg Config) *Locator {
	cfg = cfg.withDefaults()
	return &Locator{
		cfg:    cfg,
		q:      q,
		oracle: query.NewOracle(q, cfg.Logger),
		log:    cfg.Logger,
	}
}

// ForTree returns a Locator querying tree within cfg.Scope.
func ForTree(tree *dom.Tree, cfg Config) *Locator {
	return New(query.NewDocument(tree, cfg.Scope), cfg)
}

// Config returns the effective configuration.
func (l *Locator) Config() Config {
	return l.cfg
}

// Verify evaluates an arbitrary expression. Unlike the synthesis pipeline it
// reports malformed expressions to the caller.
func (l *Locator) Verify(family query.Family, expr string) ([]*dom.Node, error) {
	return l.q.Query(family, expr)
}

// Crumb is one ancestor label in a breadcrumb trail.
type Crumb struct {
	Node  *dom.Node
	Label string
}

// Breadcrumbs lists up to AnchorDepth ancestors of n below body, root first.
// Labels use a valid id, else the first accepted class.
func (l *Locator) Breadcrumbs(n *dom.Node) []Crumb {
	var crumbs []Crumb
	for cur, level := n, 0; cur != nil && cur.Tag != "body" && level < l.cfg.AnchorDepth; cur, level = cur.Parent, level+1 {
		label := cur.Tag
		if IsValidID(cur.ID, l.cfg.GenericIDs) {
			label += "#" + cur.ID
		} else {
			for _, c := range cur.Classes {
				if l.cfg.AcceptClass(c) {
					label += "." + c
					break
				}
			}
		}
		crumbs = append([]Crumb{{Node: cur, Label: label}}, crumbs...)
	}
	return crumbs
}
