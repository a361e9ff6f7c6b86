package extract

import (
	"strings"

	"pinpoint/dom"
)

// lazyAttrs are checked in order; the first non-empty one wins.
var lazyAttrs = []string{"data-src", "data-original", "data-lazy", "data-srcset", "data-actualsrc"}

// Image describes where an img element's real source lives.
type Image struct {
	IsImage   bool   `json:"isImage"`
	InPicture bool   `json:"inPicture"`
	Source    string `json:"source,omitempty"`
	// Attr names the attribute holding Source: "srcset" on the picture's
	// <source>, a lazy-load attribute, or "src".
	Attr string `json:"attr,omitempty"`
}

// AnalyzeImage inspects n. Lazy-load attributes take precedence over a
// surrounding <picture>, and a plain src is used only when it is not an
// inline data URI.
func AnalyzeImage(tree *dom.Tree, n *dom.Node) Image {
	var img Image
	if n.Tag != "img" {
		return img
	}
	img.IsImage = true

	if picture := n.Closest("picture"); picture != nil {
		img.InPicture = true
		source := picture.Selection(tree).Find("source[srcset]").First()
		if srcset, ok := source.Attr("srcset"); ok {
			if fields := strings.FieldsFunc(srcset, func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t' || r == '\n'
			}); len(fields) > 0 {
				img.Source, img.Attr = fields[0], "srcset"
			}
		}
	}

	for _, attr := range lazyAttrs {
		if v, ok := n.Attr(attr); ok && v != "" {
			img.Source, img.Attr = v, attr
			return img
		}
	}

	if img.Source == "" {
		if src, ok := n.Attr("src"); ok && src != "" && !strings.HasPrefix(src, "data:image") {
			img.Source, img.Attr = src, "src"
		}
	}
	return img
}
