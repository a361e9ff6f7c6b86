package locator

import (
	"fmt"
	"regexp"
	"strings"

	"pinpoint/dom"
	"pinpoint/query"
)

var nthChildPredicate = regexp.MustCompile(`:nth-child\(\d+\)`)

// WildcardCSS replaces every positional predicate with one matching any index.
func WildcardCSS(expr string) string {
	return nthChildPredicate.ReplaceAllString(expr, ":nth-child(n)")
}

// WildcardXPath drops every numeric index predicate. Brackets inside string
// literals are left alone.
func WildcardXPath(expr string) string {
	var sb strings.Builder
	var quote byte
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '[':
			if end := indexPredicateEnd(expr, i); end > 0 {
				i = end
				continue
			}
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// indexPredicateEnd returns the position of the closing bracket when a
// purely numeric predicate starts at i, or -1.
func indexPredicateEnd(expr string, i int) int {
	j := i + 1
	for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
		j++
	}
	if j == i+1 || j >= len(expr) || expr[j] != ']' {
		return -1
	}
	return j
}

type wildcardStrategy struct {
	l    *Locator
	kind StrategyKind
}

func (s wildcardStrategy) Kind() StrategyKind { return s.kind }

// Generalize always reports ok; a matched set that lost the target is
// returned with Viable false.
func (s wildcardStrategy) Generalize(target *dom.Node) (Generalized, bool) {
	var family query.Family
	var expr string
	if s.kind == StrategyOrdered {
		family = query.XPath
		expr = WildcardXPath(s.l.AnchoredPath(target))
	} else {
		family = query.CSS
		expr = WildcardCSS(s.l.Structural(target).Expression)
	}

	matches := FilterSimilar(s.l.oracle.Match(family, expr), target)
	g := Generalized{
		Strategy:   s.kind,
		Family:     family,
		Expression: expr,
		Count:      len(matches),
		Matches:    matches,
		Viable:     len(matches) >= 1 && query.Includes(matches, target),
	}
	g.Reason = fmt.Sprintf("%s matches %d elements", family, g.Count)
	return g, true
}
