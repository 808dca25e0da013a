// Package format renders result tables for the terminal or for Markdown
// reports.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // box-drawn terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ModeFor returns Markdown when markdown is set, ASCII otherwise.
func ModeFor(markdown bool) Mode {
	if markdown {
		return Markdown
	}
	return ASCII
}

// ColumnAlign specifies the horizontal alignment for a column.
type ColumnAlign int

const (
	AlignDefault ColumnAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ColumnConfig controls per-column formatting.
type ColumnConfig struct {
	Number   int // 1-based
	Align    ColumnAlign
	MaxWidth int // 0 = unlimited
}

// TableBuilder collects rows and renders them in the Mode chosen at creation.
type TableBuilder interface {
	Title(s string)
	Header(cols ...string)
	Row(vals ...any)
	Footer(vals ...any)
	Columns(cfgs ...ColumnConfig)
	String() string
}

// NewTable returns a TableBuilder backed by go-pretty.
func NewTable(m Mode) TableBuilder {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &prettyTable{w: w, mode: m}
}

type prettyTable struct {
	w     table.Writer
	mode  Mode
	title string
}

func (p *prettyTable) Title(s string) {
	p.title = s
	if p.mode == ASCII {
		p.w.SetTitle(s)
	}
}

func (p *prettyTable) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	p.w.AppendHeader(row)
}

func (p *prettyTable) Row(vals ...any) {
	p.w.AppendRow(append(table.Row{}, vals...))
}

func (p *prettyTable) Footer(vals ...any) {
	p.w.AppendFooter(append(table.Row{}, vals...))
}

func (p *prettyTable) Columns(cfgs ...ColumnConfig) {
	out := make([]table.ColumnConfig, len(cfgs))
	for i, c := range cfgs {
		out[i] = table.ColumnConfig{Number: c.Number, Align: align(c.Align), WidthMax: c.MaxWidth}
	}
	p.w.SetColumnConfigs(out)
}

func (p *prettyTable) String() string {
	if p.mode != Markdown {
		return p.w.Render()
	}
	// go-pretty drops titles in Markdown; emit a heading instead.
	var b strings.Builder
	if p.title != "" {
		fmt.Fprintf(&b, "### %s\n\n", p.title)
	}
	b.WriteString(p.w.RenderMarkdown())
	return b.String()
}

func align(a ColumnAlign) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	case AlignCenter:
		return text.AlignCenter
	default:
		return text.AlignDefault
	}
}

// Truncate shortens s to maxLen bytes, ending in "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// Ratio renders a fraction value with four decimals.
func Ratio(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
