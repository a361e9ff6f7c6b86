package locator

import (
	"fmt"

	"pinpoint/dom"
	"pinpoint/query"
)

type lcaStrategy struct {
	l *Locator
}

func (lcaStrategy) Kind() StrategyKind { return StrategyLCA }

// Generalize finds a container holding many same-tag descendants and
// matches them under the container's own structural expression.
func (s lcaStrategy) Generalize(target *dom.Node) (Generalized, bool) {
	l := s.l
	container, level := findContainer(target, l.cfg.LCALevels, l.cfg.MinSimilarForLCA)
	if container == nil {
		return Generalized{}, false
	}

	containerExpr := l.Structural(container).Expression
	expr := containerExpr + " " + target.Tag
	if class := mainClass(target.Classes); class != "" {
		withClass := expr + "." + EscapeCSS(class)
		if len(l.oracle.Match(query.CSS, withClass)) > 0 {
			expr = withClass
		}
	}

	matches := l.oracle.Match(query.CSS, expr)
	if !query.Includes(matches, target) {
		l.log.Debug("lca expression lost the target", "expr", expr)
		return Generalized{}, false
	}
	return Generalized{
		Strategy:       StrategyLCA,
		Family:         query.CSS,
		Expression:     expr,
		Count:          len(matches),
		Matches:        matches,
		Viable:         true,
		ContainerDepth: level,
		Reason:         fmt.Sprintf("lca container at level %d matches %d elements", level, len(matches)),
	}, true
}

// findContainer ascends from target's parent, at most levels ancestors, and
// returns the first one with at least minCount descendants sharing the
// target's tag.
func findContainer(target *dom.Node, levels, minCount int) (*dom.Node, int) {
	cur := target.Parent
	for level := 0; cur != nil && level < levels; level++ {
		count := 0
		for _, d := range cur.Descendants() {
			if d.Tag == target.Tag {
				count++
			}
		}
		if count >= minCount {
			return cur, level
		}
		cur = cur.Parent
	}
	return nil, 0
}
