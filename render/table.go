package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableFormat selects the border style of rendered tables
type TableFormat string

const (
	TableSingle TableFormat = "single"
	TableDouble TableFormat = "double"
	TableNone   TableFormat = "none"
)

// TableFormats returns every table format in display order
func TableFormats() []TableFormat {
	return []TableFormat{TableSingle, TableDouble, TableNone}
}

var borderless = lipgloss.Border{
	Top:          "=",
	Bottom:       "=",
	Left:         " ",
	Right:        " ",
	TopLeft:      " ",
	TopRight:     " ",
	BottomLeft:   " ",
	BottomRight:  " ",
	MiddleLeft:   " ",
	MiddleRight:  " ",
	Middle:       " ",
	MiddleTop:    " ",
	MiddleBottom: " ",
}

// Border returns the border set drawn for the format
func (f TableFormat) Border() lipgloss.Border {
	switch f {
	case TableDouble:
		return lipgloss.DoubleBorder()
	case TableNone:
		return borderless
	default:
		return lipgloss.NormalBorder()
	}
}

// table is a bordered grid with optional separators below chosen rows
type table struct {
	border     lipgloss.Border
	headers    []string
	rows       [][]string
	separators map[int]bool
}

func newTable(format TableFormat, headers ...string) *table {
	return &table{
		border:     format.Border(),
		headers:    headers,
		separators: make(map[int]bool),
	}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// addSeparator draws a line below the most recently added row
func (t *table) addSeparator() {
	if len(t.rows) > 0 {
		t.separators[len(t.rows)-1] = true
	}
}

func (t *table) String() string {
	widths := make([]int, len(t.headers))
	measure := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	measure(t.headers)
	for _, r := range t.rows {
		measure(r)
	}

	var b strings.Builder
	rule := func(left, fill, cross, right string) {
		b.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(cross)
			}
			b.WriteString(strings.Repeat(fill, w+2))
		}
		b.WriteString(right)
		b.WriteByte('\n')
	}
	row := func(cells []string) {
		b.WriteString(t.border.Left)
		for i, w := range widths {
			if i > 0 {
				b.WriteString(t.border.Left)
			}
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" " + cell + strings.Repeat(" ", w-lipgloss.Width(cell)) + " ")
		}
		b.WriteString(t.border.Right)
		b.WriteByte('\n')
	}

	rule(t.border.TopLeft, t.border.Top, t.border.MiddleTop, t.border.TopRight)
	row(t.headers)
	rule(t.border.MiddleLeft, t.border.Top, t.border.Middle, t.border.MiddleRight)
	for i, r := range t.rows {
		row(r)
		if t.separators[i] && i < len(t.rows)-1 {
			rule(t.border.MiddleLeft, t.border.Top, t.border.Middle, t.border.MiddleRight)
		}
	}
	rule(t.border.BottomLeft, t.border.Bottom, t.border.MiddleBottom, t.border.BottomRight)

	return b.String()
}
