package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// cells measures display width independently of the user's locale, so box
// characters always count as one cell.
var cells = &runewidth.Condition{}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return cells.StringWidth(s)
}

// Alignment controls how a cell is padded.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// BoxStyle holds the characters used for table borders.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
	TopTee, BottomTee, LeftTee, RightTee       rune
	Cross                                      rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		TopTee: '┬', BottomTee: '┴', LeftTee: '├', RightTee: '┤', Cross: '┼',
	}

	ASCIIBox = BoxStyle{
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
		TopTee: '+', BottomTee: '+', LeftTee: '+', RightTee: '+', Cross: '+',
	}
)

// minColumnWidth is the narrowest a column is shrunk to when fitting.
const minColumnWidth = 3

// Table represents a drawable table.
type Table struct {
	Headers     []string
	Rows        [][]string
	ColumnAlign []Alignment
	BoxStyle    BoxStyle
	// MaxWidth shrinks the widest columns until the table fits; 0 disables.
	MaxWidth int
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		Headers:     headers,
		BoxStyle:    SingleBox,
		ColumnAlign: make([]Alignment, len(headers)),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	for len(row) < len(t.Headers) {
		row = append(row, "")
	}
	t.Rows = append(t.Rows, row)
}

// SetAlignment sets the alignment for a column.
func (t *Table) SetAlignment(col int, align Alignment) {
	if col >= 0 && col < len(t.ColumnAlign) {
		t.ColumnAlign[col] = align
	}
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], StringWidth(cell))
			}
		}
	}

	if t.MaxWidth <= 0 {
		return widths
	}
	for total := totalWidth(widths); total > t.MaxWidth; total-- {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + 3
	}
	return total
}

// TotalWidth returns the total width the table will occupy.
func (t *Table) TotalWidth() int {
	return totalWidth(t.columnWidths())
}

// String renders the table, one line per row plus borders.
func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()
	box := t.BoxStyle

	var sb strings.Builder
	t.writeBorder(&sb, widths, box.TopLeft, box.TopTee, box.TopRight)
	t.writeRow(&sb, widths, t.Headers)
	t.writeBorder(&sb, widths, box.LeftTee, box.Cross, box.RightTee)
	for _, row := range t.Rows {
		t.writeRow(&sb, widths, row)
	}
	t.writeBorder(&sb, widths, box.BottomLeft, box.BottomTee, box.BottomRight)
	return sb.String()
}

func (t *Table) writeBorder(sb *strings.Builder, widths []int, left, mid, right rune) {
	sb.WriteRune(left)
	for i, w := range widths {
		sb.WriteString(strings.Repeat(string(t.BoxStyle.Horizontal), w+2))
		if i < len(widths)-1 {
			sb.WriteRune(mid)
		} else {
			sb.WriteRune(right)
		}
	}
	sb.WriteByte('\n')
}

func (t *Table) writeRow(sb *strings.Builder, widths []int, row []string) {
	sb.WriteRune(t.BoxStyle.Vertical)
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = strings.ReplaceAll(row[i], "\n", " ")
		}
		cell = cells.Truncate(cell, w, "…")
		if i < len(t.ColumnAlign) && t.ColumnAlign[i] == AlignRight {
			cell = cells.FillLeft(cell, w)
		} else {
			cell = cells.FillRight(cell, w)
		}
		sb.WriteByte(' ')
		sb.WriteString(cell)
		sb.WriteByte(' ')
		sb.WriteRune(t.BoxStyle.Vertical)
	}
	sb.WriteByte('\n')
}
