package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pinpoint/dom"
)

func nodes(t *testing.T, tree *dom.Tree, tag string) []*dom.Node {
	t.Helper()
	var out []*dom.Node
	for _, n := range tree.AllNodes {
		if n.Tag == tag {
			out = append(out, n)
		}
	}
	return out
}

func TestPreview(t *testing.T) {
	tree, err := dom.ParseString(`<html><body><ul>
		<li><a href="/one">  First
			item </a></li>
		<li>An item whose text runs well past the thirty rune limit</li>
		<li><img src="x.png"></li>
		<li>Fourth</li>
	</ul><a href="/direct">Direct</a></body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	got := Preview(tree, nodes(t, tree, "li"), 0)
	want := []Item{
		{Text: "First item", Href: "/one"},
		{Text: "An item whose text runs well p..."},
		{Text: "(no text)"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}

	links := nodes(t, tree, "a")
	if got := Preview(tree, links[1:], 5); len(got) != 1 || got[0].Href != "/direct" {
		t.Errorf("expected the link's own href, got %+v", got)
	}
}

func TestAnalyzeImage(t *testing.T) {
	tree, err := dom.ParseString(`<html><body>
		<picture><source srcset="big.webp 2x, small.webp 1x"><img id="pic" src="fallback.jpg"></picture>
		<img id="lazy" src="data:image/gif;base64,R0lGOD" data-original="real.jpg">
		<img id="inline" src="data:image/png;base64,AAAA">
		<img id="plain" src="plain.png">
		<p id="text">not an image</p>
	</body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	byID := map[string]*dom.Node{}
	for _, n := range tree.AllNodes {
		if n.ID != "" {
			byID[n.ID] = n
		}
	}

	tests := []struct {
		id   string
		want Image
	}{
		{"pic", Image{IsImage: true, InPicture: true, Source: "big.webp", Attr: "srcset"}},
		{"lazy", Image{IsImage: true, Source: "real.jpg", Attr: "data-original"}},
		{"inline", Image{IsImage: true}},
		{"plain", Image{IsImage: true, Source: "plain.png", Attr: "src"}},
		{"text", Image{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, AnalyzeImage(tree, byID[tt.id])); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tt.id, diff)
		}
	}
}
