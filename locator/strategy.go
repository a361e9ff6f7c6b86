package locator

import (
	"pinpoint/dom"
	"pinpoint/query"
)

// StrategyKind names a generalization strategy.
type StrategyKind int

const (
	StrategyStructural StrategyKind = iota
	StrategyOrdered
	StrategyLCA
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyOrdered:
		return "ordered-wildcard"
	case StrategyLCA:
		return "lca"
	}
	return "structural-wildcard"
}

// Generalized is the outcome of one generalization strategy.
type Generalized struct {
	Strategy   StrategyKind
	Family     query.Family
	Expression string
	Count      int
	Matches    []*dom.Node
	// Viable is false when the matched set lost the target.
	Viable bool
	// ContainerDepth is the LCA container's ascent level above the target's
	// parent (0 = parent). Unused by the wildcard strategies.
	ContainerDepth int
	Reason         string
}

// Generalization is the result of LocateGeneralized.
type Generalization struct {
	StructuralWildcard Generalized
	OrderedWildcard    Generalized
	LCA                *Generalized
	Best               Generalized
}

// LocatorStrategy produces a generalized expression for a target. ok is
// false when the strategy has nothing to offer.
type LocatorStrategy interface {
	Kind() StrategyKind
	Generalize(target *dom.Node) (g Generalized, ok bool)
}

// Strategies returns the three strategies backed by l.
func (l *Locator) Strategies() (structural, ordered, lca LocatorStrategy) {
	return wildcardStrategy{l: l, kind: StrategyStructural},
		wildcardStrategy{l: l, kind: StrategyOrdered},
		lcaStrategy{l: l}
}

// LocateGeneralized relaxes the precise locators of target and lets the
// arbiter pick among the wildcard and LCA strategies.
func (l *Locator) LocateGeneralized(target *dom.Node) Generalization {
	structural, ordered, lca := l.Strategies()
	a := Arbiter{
		Structural: structural,
		Ordered:    ordered,
		LCA:        lca,
		Threshold:  l.cfg.ImprovementThreshold,
	}
	g := a.Run(target)
	l.log.Debug("generalization chosen",
		"strategy", g.Best.Strategy, "expr", g.Best.Expression, "count", g.Best.Count)
	return g
}
