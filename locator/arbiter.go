package locator

import "pinpoint/dom"

// Arbiter composes the generalization strategies and picks the best one.
type Arbiter struct {
	Structural LocatorStrategy
	Ordered    LocatorStrategy
	LCA        LocatorStrategy // optional
	Threshold  float64
}

// Run executes every strategy for target.
func (a Arbiter) Run(target *dom.Node) Generalization {
	var g Generalization
	g.StructuralWildcard, _ = a.Structural.Generalize(target)
	g.OrderedWildcard, _ = a.Ordered.Generalize(target)
	if a.LCA != nil {
		if lca, ok := a.LCA.Generalize(target); ok {
			g.LCA = &lca
		}
	}
	g.Best = choose(g.StructuralWildcard, g.OrderedWildcard, g.LCA, a.Threshold)
	return g
}

// choose prefers LCA only when its count beats the better wildcard by at
// least threshold (relative). Otherwise the wildcard with more matches wins,
// ties going to the structural family.
func choose(css, xp Generalized, lca *Generalized, threshold float64) Generalized {
	cssCount, xpCount := effectiveCount(css), effectiveCount(xp)
	if lca != nil && lca.Viable && lca.Count > 0 {
		other := max(cssCount, xpCount)
		if other == 0 {
			return *lca
		}
		if float64(lca.Count-other)/float64(other) >= threshold {
			return *lca
		}
	}
	if cssCount >= xpCount {
		return css
	}
	return xp
}

func effectiveCount(g Generalized) int {
	if !g.Viable {
		return 0
	}
	return g.Count
}
