package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pinpoint/dom"
	"pinpoint/query"
)

const (
	maxTextLength     = 30
	maxTextChildCount = 3
)

// Ordered strategy scores. Lower wins against the structural penalty.
const (
	textScore      = 5
	idScore        = 3
	testIDScore    = 8
	attributeScore = 10
	anchoredScore  = 80
)

// orderedAttrs are tried after data-testid, in this order.
var orderedAttrs = []string{"name", "data-test", "aria-label", "title", "role"}

// Ordered tries text, id, test-id and semantic attribute expressions in
// priority order, falling back to the anchored precise path.
func (l *Locator) Ordered(target *dom.Node) Candidate {
	tag := target.Tag

	if text := directText(target); text != "" && !strings.ContainsAny(text, `'"`) {
		expr := fmt.Sprintf("//%s[contains(normalize-space(.), '%s')]", tag, text)
		if l.oracle.Unique(query.XPath, expr, target) {
			return orderedCandidate(expr, KindText, textScore, "text match")
		}
	}

	// Ids passing the validity rule are trusted; duplicates are caught when
	// the hybrid selector re-validates.
	if IsValidID(target.ID, l.cfg.GenericIDs) {
		expr := fmt.Sprintf("//*[@id=%s]", xpathLiteral(target.ID))
		return orderedCandidate(expr, KindAttribute, idScore, "id anchor")
	}

	if v, ok := target.Attr("data-testid"); ok && v != "" {
		expr := fmt.Sprintf("//%s[@data-testid=%s]", tag, xpathLiteral(v))
		if l.oracle.Unique(query.XPath, expr, target) {
			return orderedCandidate(expr, KindAttribute, testIDScore, "data-testid attribute")
		}
	}

	for _, attr := range orderedAttrs {
		v, ok := target.Attr(attr)
		if !ok || v == "" {
			continue
		}
		expr := fmt.Sprintf("//%s[@%s=%s]", tag, attr, xpathLiteral(v))
		if l.oracle.Unique(query.XPath, expr, target) {
			return orderedCandidate(expr, KindAttribute, attributeScore, attr+" attribute")
		}
	}

	return orderedCandidate(l.AnchoredPath(target), KindPositional, anchoredScore, "anchored path")
}

func orderedCandidate(expr string, kind Kind, score float64, reason string) Candidate {
	return Candidate{
		Expression: expr,
		Family:     query.XPath,
		Kind:       kind,
		Penalty:    score,
		Reason:     reason,
	}
}

// directText returns the text used for text matching: the visible text
// (falling back to own text nodes), capped at maxTextLength runes. Nodes with
// more than maxTextChildCount element children are containers whose text is
// unreliable, so they get "".
func directText(n *dom.Node) string {
	if len(n.Children) > maxTextChildCount {
		return ""
	}
	text := n.VisibleText()
	if text == "" {
		text = n.OwnText()
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		text = string([]rune(text)[:maxTextLength])
	}
	return strings.TrimSpace(text)
}
