// Package dom provides a read-only element tree snapshot used for locator
// synthesis. Nodes mirror the parsed HTML element tree: tag, id, classes,
// attributes, ordered element children and a non-owning parent link.
package dom

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HiddenMarker is stamped on elements without a layout box when a document
// is captured from a real browser (see package fetcher).
const HiddenMarker = "data-pinpoint-hidden"

// ErrNotElement is returned when a lookup resolves to a non-element node.
var ErrNotElement = errors.New("not an element node")

// Node represents an element in the tree.
type Node struct {
	Tag      string            // lower-case tag name, e.g. "div"
	ID       string            // id attribute
	Classes  []string          // class names in source order
	Attrs    map[string]string // all attributes, keys unique
	Children []*Node           // element children, in order
	Parent   *Node             // nil for the document element
	Index    int               // 1-based position among element siblings
	Depth    int               // ancestors up to (not including) body
	Visible  bool

	raw *html.Node
}

// Tree is a point-in-time snapshot of a parsed document.
type Tree struct {
	Doc      *goquery.Document
	Root     *Node   // the <html> element
	Body     *Node   // the <body> element, nil for fragments without one
	AllNodes []*Node // document order

	index map[*html.Node]*Node
}

// Parse reads an HTML document and builds a tree snapshot.
func Parse(r io.Reader) (*Tree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewTree(doc), nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}

// NewTree indexes an already parsed goquery document.
func NewTree(doc *goquery.Document) *Tree {
	t := &Tree{
		Doc:   doc,
		index: make(map[*html.Node]*Node),
	}
	for _, top := range doc.Nodes {
		for c := top.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			t.Root = t.build(c, nil, 1, true)
			break
		}
	}
	return t
}

func (t *Tree) build(raw *html.Node, parent *Node, index int, parentVisible bool) *Node {
	n := &Node{
		Tag:    strings.ToLower(raw.Data),
		Attrs:  make(map[string]string, len(raw.Attr)),
		Parent: parent,
		Index:  index,
		raw:    raw,
	}
	for _, a := range raw.Attr {
		key := strings.ToLower(a.Key)
		if _, dup := n.Attrs[key]; dup {
			continue
		}
		n.Attrs[key] = a.Val
	}
	n.ID = n.Attrs["id"]
	n.Classes = strings.Fields(n.Attrs["class"])
	n.Depth = depthOf(n)
	n.Visible = parentVisible && !hiddenSelf(n)

	t.index[raw] = n
	t.AllNodes = append(t.AllNodes, n)
	if n.Tag == "body" && t.Body == nil {
		t.Body = n
	}

	i := 0
	for c := raw.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		i++
		n.Children = append(n.Children, t.build(c, n, i, n.Visible))
	}
	return n
}

// depthOf counts the chain from n up to, but not including, body or html.
func depthOf(n *Node) int {
	if n.Tag == "body" || n.Tag == "html" {
		return 0
	}
	if n.Parent == nil {
		return 1
	}
	return 1 + n.Parent.Depth
}

// Document returns the raw document node queries are evaluated against.
func (t *Tree) Document() *html.Node {
	if len(t.Doc.Nodes) == 0 {
		return nil
	}
	return t.Doc.Nodes[0]
}

// Lookup maps a raw parsed node back to its snapshot node.
func (t *Tree) Lookup(raw *html.Node) *Node {
	return t.index[raw]
}

// Element maps a raw node to its snapshot node, failing with ErrNotElement
// for text, comment and document nodes.
func (t *Tree) Element(raw *html.Node) (*Node, error) {
	if n := t.index[raw]; n != nil {
		return n, nil
	}
	return nil, ErrNotElement
}

// LookupAll maps raw nodes to snapshot nodes, skipping non-elements.
func (t *Tree) LookupAll(raws []*html.Node) []*Node {
	nodes := make([]*Node, 0, len(raws))
	for _, r := range raws {
		if n := t.index[r]; n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Raw returns the underlying parsed node.
func (n *Node) Raw() *html.Node {
	return n.raw
}

// Selection wraps the node for goquery traversal.
func (n *Node) Selection(t *Tree) *goquery.Selection {
	return t.Doc.FindNodes(n.raw)
}

// Attr returns an attribute value and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// HasClass reports whether the node carries the class name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Closest returns the nearest inclusive ancestor with the given tag.
func (n *Node) Closest(tag string) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Tag == tag {
			return cur
		}
	}
	return nil
}

// Descendants returns all element descendants in document order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// HasSameTagSibling reports whether another child of the parent shares the tag.
func (n *Node) HasSameTagSibling() bool {
	if n.Parent == nil {
		return false
	}
	for _, s := range n.Parent.Children {
		if s != n && s.Tag == n.Tag {
			return true
		}
	}
	return false
}

// TagIndex returns the 1-based position among same-tag siblings.
func (n *Node) TagIndex() int {
	if n.Parent == nil {
		return 1
	}
	idx := 0
	for _, s := range n.Parent.Children {
		if s.Tag == n.Tag {
			idx++
		}
		if s == n {
			break
		}
	}
	return idx
}

// DisplayName returns a short tag#id.class label for listings.
func (n *Node) DisplayName() string {
	name := n.Tag
	if n.ID != "" {
		name += "#" + n.ID
	}
	for _, class := range n.Classes {
		if len(name) < 30 {
			name += "." + class
		}
	}
	if len(name) > 35 {
		name = name[:32] + "..."
	}
	return name
}
