package locator

import (
	"fmt"
	"strings"

	"pinpoint/dom"
	"pinpoint/query"
)

// AnchoredPath builds a precise XPath from target toward body. The walk is
// truncated at the first ancestor that a unique id or tag.class expression
// identifies; otherwise each level emits tag, indexed among same-tag
// siblings only when such siblings exist.
func (l *Locator) AnchoredPath(target *dom.Node) string {
	var steps []string
	for cur, depth := target, 0; cur != nil && cur.Tag != "body" && depth < l.cfg.AnchorDepth; cur, depth = cur.Parent, depth+1 {
		if cur != target {
			if anchor := l.anchorStep(cur); anchor != "" {
				steps = append(steps, anchor)
				break
			}
		}
		step := cur.Tag
		if cur.HasSameTagSibling() {
			step += fmt.Sprintf("[%d]", cur.TagIndex())
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return "//" + target.Tag
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	path := strings.Join(steps, "/")
	if !strings.HasPrefix(path, "//") {
		path = "//" + path
	}
	return strings.ReplaceAll(path, "///", "//")
}

// anchorStep returns an id or class step when n is uniquely identifiable.
func (l *Locator) anchorStep(n *dom.Node) string {
	if n.ID != "" && !startsWithDigit(n.ID) &&
		l.oracle.Unique(query.CSS, "#"+EscapeCSS(n.ID), n) {
		return fmt.Sprintf("//%s[@id=%s]", n.Tag, xpathLiteral(n.ID))
	}
	if class := anchorClass(n.Classes); class != "" &&
		l.oracle.Unique(query.CSS, n.Tag+"."+EscapeCSS(class), n) {
		return fmt.Sprintf("//%s[contains(@class, %s)]", n.Tag, xpathLiteral(class))
	}
	return ""
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
