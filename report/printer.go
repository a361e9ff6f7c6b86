// Package report renders locator results for the terminal: box tables,
// indented element trees and optional colour.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"pinpoint/dom"
	"pinpoint/extract"
	"pinpoint/locator"
	"pinpoint/query"
)

// Printer writes human-readable reports.
type Printer struct {
	w     io.Writer
	width int

	title *color.Color
	good  *color.Color
	warn  *color.Color
	faint *color.Color
}

// NewPrinter returns a Printer for w. mode is "auto", "always" or "never";
// auto colours only terminals.
func NewPrinter(w io.Writer, mode string) *Printer {
	p := &Printer{
		w:     w,
		width: DefaultWidth,
		title: color.New(color.Bold),
		good:  color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow),
		faint: color.New(color.Faint),
	}

	enable := false
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		p.width = TerminalWidth(f)
		enable = !color.NoColor
	}
	switch mode {
	case "always":
		enable = true
	case "never":
		enable = false
	}
	for _, c := range []*color.Color{p.title, p.good, p.warn, p.faint} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) table(headers ...string) *Table {
	t := NewTable(headers...)
	t.MaxWidth = p.width
	return t
}

// Selection prints both single-node candidates and the winner.
func (p *Printer) Selection(target *dom.Node, sel locator.Selection, crumbs []locator.Crumb) {
	fmt.Fprintf(p.w, "%s %s\n", p.title.Sprint("target"), target.DisplayName())
	if len(crumbs) > 0 {
		fmt.Fprintf(p.w, "%s %s\n", p.faint.Sprint("path"), Breadcrumbs(crumbs))
	}

	t := p.table("strategy", "family", "expression", "penalty", "reason")
	t.SetAlignment(3, AlignRight)
	for _, c := range []struct {
		name string
		c    locator.Candidate
	}{{"structural", sel.Structural}, {"ordered", sel.Ordered}} {
		t.AddRow(c.name, c.c.Family.String(), c.c.Expression, formatPenalty(c.c.Penalty), c.c.Reason)
	}
	fmt.Fprint(p.w, t.String())

	p.best(sel.Best.Family, sel.Best.Expression, sel.Best.NonUnique)
}

func (p *Printer) best(family query.Family, expr string, nonUnique bool) {
	label := p.good.Sprint("best")
	if nonUnique {
		label = p.warn.Sprint("best (not unique)")
	}
	fmt.Fprintf(p.w, "%s %s %s\n", label, p.faint.Sprint(family), expr)
}

// Generalization prints every strategy's matched count and the winner, with
// a preview of the winner's first matches.
func (p *Printer) Generalization(g locator.Generalization, preview []extract.Item) {
	t := p.table("strategy", "family", "expression", "matches", "reason")
	t.SetAlignment(3, AlignRight)
	rows := []locator.Generalized{g.StructuralWildcard, g.OrderedWildcard}
	if g.LCA != nil {
		rows = append(rows, *g.LCA)
	}
	for _, r := range rows {
		count := strconv.Itoa(r.Count)
		if !r.Viable {
			count += "*"
		}
		t.AddRow(r.Strategy.String(), r.Family.String(), r.Expression, count, r.Reason)
	}
	fmt.Fprint(p.w, t.String())
	if !g.StructuralWildcard.Viable || !g.OrderedWildcard.Viable {
		fmt.Fprintln(p.w, p.faint.Sprint("* lost the target; not eligible"))
	}

	p.best(g.Best.Family, g.Best.Expression, false)
	p.Preview(preview)
}

// Matches prints the result of verifying an expression.
func (p *Printer) Matches(family query.Family, expr string, nodes []*dom.Node, preview []extract.Item) {
	switch len(nodes) {
	case 0:
		fmt.Fprintf(p.w, "%s %s %s\n", p.warn.Sprint("no matches"), p.faint.Sprint(family), expr)
		return
	case 1:
		fmt.Fprintf(p.w, "%s %s %s\n", p.good.Sprint("unique"), p.faint.Sprint(family), expr)
	default:
		fmt.Fprintf(p.w, "%s %s %s\n", p.title.Sprintf("%d matches", len(nodes)), p.faint.Sprint(family), expr)
	}
	p.Preview(preview)
}

// Preview prints previewed items as a table.
func (p *Printer) Preview(items []extract.Item) {
	if len(items) == 0 {
		return
	}
	t := p.table("#", "text", "href")
	t.SetAlignment(0, AlignRight)
	for i, it := range items {
		t.AddRow(strconv.Itoa(i+1), it.Text, it.Href)
	}
	fmt.Fprint(p.w, t.String())
}

// Image prints where an image's real source lives.
func (p *Printer) Image(img extract.Image) {
	if !img.IsImage {
		return
	}
	if img.Source == "" {
		fmt.Fprintln(p.w, p.warn.Sprint("image: no usable source"))
		return
	}
	where := img.Attr
	if img.InPicture && img.Attr == "srcset" {
		where = "<picture> source srcset"
	}
	fmt.Fprintf(p.w, "%s %s %s\n", p.title.Sprint("image"), img.Source, p.faint.Sprintf("(%s)", where))
}

// Tree prints the element tree below root, down to maxDepth levels
// (0 = unlimited). Hidden elements are dimmed.
func (p *Printer) Tree(root *dom.Node, maxDepth int) {
	var walk func(n *dom.Node, level int)
	walk = func(n *dom.Node, level int) {
		line := strings.Repeat("  ", level) + n.DisplayName()
		if text := n.OwnText(); text != "" {
			avail := p.width - StringWidth(line) - 3
			if avail > 10 {
				line += " " + p.faint.Sprintf("%q", cells.Truncate(text, avail-2, "…"))
			}
		}
		if !n.Visible {
			line = p.faint.Sprint(line + " (hidden)")
		}
		fmt.Fprintln(p.w, line)
		if maxDepth > 0 && level+1 >= maxDepth {
			return
		}
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(root, 0)
}

// Breadcrumbs joins crumb labels root first.
func Breadcrumbs(crumbs []locator.Crumb) string {
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		labels[i] = c.Label
	}
	return strings.Join(labels, " > ")
}

func formatPenalty(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
