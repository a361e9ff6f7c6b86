package locator

import (
	"pinpoint/dom"
	"pinpoint/query"
)

// LocateSingle runs the structural and ordered searches, re-validates both
// and returns the better one. A confirmed-unique candidate always beats an
// unconfirmed one; otherwise the lower penalty wins. A result the oracle
// cannot confirm is penalised and flagged, never dropped.
func (l *Locator) LocateSingle(target *dom.Node) Selection {
	structural := l.validate(l.Structural(target), target)
	ordered := l.validate(l.Ordered(target), target)

	best := structural
	switch {
	case structural.NonUnique != ordered.NonUnique:
		if structural.NonUnique {
			best = ordered
		}
	case ordered.Penalty < structural.Penalty:
		best = ordered
	}
	l.log.Debug("single locator chosen",
		"family", best.Family, "expr", best.Expression, "penalty", best.Penalty)
	return Selection{Structural: structural, Ordered: ordered, Best: best}
}

func (l *Locator) validate(c Candidate, target *dom.Node) Candidate {
	if !l.oracle.Unique(c.Family, c.Expression, target) {
		c.Penalty += nonUniqueWeight
		c.NonUnique = true
		c.Reason += " (not unique)"
	}
	return c
}

// Unique exposes the oracle check for callers holding a Selection.
func (l *Locator) Unique(family query.Family, expr string, target *dom.Node) bool {
	return l.oracle.Unique(family, expr, target)
}
