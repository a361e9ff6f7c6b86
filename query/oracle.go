package query

import (
	"io"
	"log/slog"

	"pinpoint/dom"
)

// Oracle confirms whether candidate expressions identify a target.
// Query failures never escape: they count as "no match".
type Oracle struct {
	q   Queryable
	log *slog.Logger
}

// NewOracle wraps a Queryable. A nil logger discards output.
func NewOracle(q Queryable, logger *slog.Logger) *Oracle {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Oracle{q: q, log: logger}
}

// Match returns the matched nodes, or nil when the expression is malformed.
func (o *Oracle) Match(family Family, expr string) []*dom.Node {
	nodes, err := o.q.Query(family, expr)
	if err != nil {
		o.log.Debug("query failed", "family", family, "expr", expr, "error", err)
		return nil
	}
	return nodes
}

// Unique reports whether expr matches exactly one node and that node is target.
func (o *Oracle) Unique(family Family, expr string, target *dom.Node) bool {
	nodes := o.Match(family, expr)
	return len(nodes) == 1 && nodes[0] == target
}

// Includes reports whether target is among nodes.
func Includes(nodes []*dom.Node, target *dom.Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}
