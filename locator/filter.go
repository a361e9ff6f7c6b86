package locator

import "pinpoint/dom"

// FilterSimilar drops candidates unlike target: a different tag, a depth
// below body differing by more than one, or no layout box while the target
// has one. The result is independent of input order and filtering twice
// changes nothing.
func FilterSimilar(candidates []*dom.Node, target *dom.Node) []*dom.Node {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]*dom.Node, 0, len(candidates))
	for _, c := range candidates {
		if c.Tag != target.Tag {
			continue
		}
		if diff := c.Depth - target.Depth; diff > 1 || diff < -1 {
			continue
		}
		if !c.Visible && target.Visible {
			continue
		}
		out = append(out, c)
	}
	return out
}
