package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nonRendered lists tags that never produce a layout box.
var nonRendered = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Template: true,
	atom.Noscript: true, atom.Meta: true, atom.Link: true, atom.Title: true, atom.Base: true,
}

func hiddenSelf(n *Node) bool {
	if nonRendered[n.raw.DataAtom] {
		return true
	}
	if _, ok := n.Attrs["hidden"]; ok {
		return true
	}
	if _, ok := n.Attrs[HiddenMarker]; ok {
		return true
	}
	if n.Tag == "input" && strings.EqualFold(n.Attrs["type"], "hidden") {
		return true
	}
	style := strings.ToLower(strings.Join(strings.Fields(n.Attrs["style"]), ""))
	return strings.Contains(style, "display:none")
}

// OwnText concatenates the node's direct text children, excluding
// descendant text. Whitespace is collapsed.
func (n *Node) OwnText() string {
	var sb strings.Builder
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return collapse(sb.String())
}

// VisibleText approximates the rendered text of the node: text from visible
// descendants only, whitespace collapsed. Empty for hidden nodes.
func (n *Node) VisibleText() string {
	if !n.Visible {
		return ""
	}
	var sb strings.Builder
	n.appendVisibleText(&sb)
	return collapse(sb.String())
}

// appendVisibleText walks raw children alongside n.Children, which hold the
// element children in the same order.
func (n *Node) appendVisibleText(sb *strings.Builder) {
	i := 0
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			if i >= len(n.Children) {
				return
			}
			child := n.Children[i]
			i++
			if !child.Visible {
				continue
			}
			if child.raw.DataAtom == atom.Br {
				sb.WriteByte(' ')
			}
			child.appendVisibleText(sb)
		}
	}
}

// TextContent returns all descendant text, whitespace collapsed.
func (n *Node) TextContent() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n.raw)
	return collapse(sb.String())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
