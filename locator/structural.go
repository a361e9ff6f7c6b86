package locator

import (
	"fmt"
	"sort"
	"strings"

	"pinpoint/dom"
	"pinpoint/query"
)

type scoredPath struct {
	expr    string
	penalty float64
}

// Structural runs the path synthesizer: unique seeds first, then a
// breadth-first ascent combining ancestor seeds with the current frontier,
// and finally the fully indexed positional path.
func (l *Locator) Structural(target *dom.Node) Candidate {
	seeds := Seeds(target, l.cfg)
	var found []scoredPath
	for _, s := range seeds {
		if l.oracle.Unique(query.CSS, s, target) {
			found = append(found, scoredPath{s, Penalty(s)})
		}
	}

	if len(found) == 0 {
		found = l.ascend(target, seeds)
	}

	if len(found) == 0 {
		expr := positionalPath(target, l.cfg.Scope)
		l.log.Debug("structural search exhausted, using positional path", "expr", expr)
		return Candidate{
			Expression: expr,
			Family:     query.CSS,
			Kind:       KindPositional,
			Penalty:    Penalty(expr),
			Reason:     "full positional path",
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].penalty < found[j].penalty })
	best := found[0]
	l.log.Debug("structural candidates", "count", len(found), "best", best.expr, "penalty", best.penalty)
	return Candidate{
		Expression: best.expr,
		Family:     query.CSS,
		Kind:       KindStructural,
		Penalty:    best.penalty,
		Reason:     structuralReason(best.expr),
	}
}

func (l *Locator) ascend(target *dom.Node, frontier []string) []scoredPath {
	var found []scoredPath
	cur := target
	for level := 0; cur.Parent != nil && level < l.cfg.AscentLevels; level++ {
		cur = cur.Parent
		parentSeeds := Seeds(cur, l.cfg)
		next := make([]string, 0, len(parentSeeds)*len(frontier)*2)
		for _, ps := range parentSeeds {
			for _, path := range frontier {
				for _, expr := range [2]string{ps + " " + path, ps + ">" + path} {
					next = append(next, expr)
					if l.oracle.Unique(query.CSS, expr, target) {
						found = append(found, scoredPath{expr, Penalty(expr)})
					}
				}
			}
		}
		frontier = capFrontier(next, l.cfg.FrontierCap)
		if len(found) >= l.cfg.CandidateCap {
			break
		}
	}
	return found
}

// capFrontier keeps the limit lowest-penalty paths, preserving order among
// equal penalties.
func capFrontier(paths []string, limit int) []string {
	if len(paths) <= limit {
		return paths
	}
	scored := make([]scoredPath, len(paths))
	for i, p := range paths {
		scored[i] = scoredPath{p, Penalty(p)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].penalty < scored[j].penalty })
	out := make([]string, limit)
	for i := range out {
		out[i] = scored[i].expr
	}
	return out
}

// positionalPath walks from target up to scope, emitting tag:nth-child(i)
// per level joined by child combinators.
func positionalPath(target, scope *dom.Node) string {
	var parts []string
	for cur := target; cur != nil && cur != scope && cur.Parent != nil; cur = cur.Parent {
		parts = append(parts, fmt.Sprintf("%s:nth-child(%d)", cur.Tag, cur.Index))
	}
	if len(parts) == 0 {
		return target.Tag
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ">")
}

func structuralReason(expr string) string {
	c := countPredicates(expr)
	switch {
	case c.ids > 0:
		return "id anchor"
	case c.attrs > 0:
		return "attribute anchor"
	case c.positions > 0:
		return "positional path"
	}
	return "class/tag path"
}
