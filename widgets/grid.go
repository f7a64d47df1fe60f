package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-drum/sequencer"
	"go-drum/theme"
)

// Cell is one step of the instrument grid
type Cell struct {
	Value    sequencer.StepValue
	Cursor   bool
	Playhead bool
	Disabled bool
}

// CellRune picks the symbol for a cell. Playhead wins over an empty step,
// the cursor variant wins over everything else.
func CellRune(sym theme.Symbols, c Cell) rune {
	switch {
	case c.Disabled:
		return sym.StepDisabled
	case c.Cursor:
		switch c.Value {
		case sequencer.Accent:
			return sym.CursorAccent
		case sequencer.Normal:
			return sym.CursorNormal
		}
		return sym.CursorOff
	case c.Value == sequencer.Accent:
		return sym.StepAccent
	case c.Value == sequencer.Normal:
		return sym.StepNormal
	case c.Playhead:
		return sym.StepPlayhead
	}
	return sym.StepOff
}

func cellStyle(th *theme.Theme, c Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch {
	case c.Disabled:
		return style.Foreground(th.Muted())
	case c.Cursor:
		style = style.Foreground(th.Cursor())
	case c.Playhead:
		style = style.Foreground(th.Success())
	case c.Value == sequencer.Accent:
		style = style.Foreground(th.Warning())
	case c.Value == sequencer.Normal:
		style = style.Foreground(th.Active())
	default:
		style = style.Foreground(th.Muted())
	}
	if c.Value == sequencer.Accent {
		style = style.Bold(true)
	}
	return style
}

// RenderRow renders a labelled row of cells, one column per step with a gap
// between beats
func RenderRow(th *theme.Theme, label string, labelWidth int, cells []Cell) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("%-*s ", labelWidth, label))
	for i, c := range cells {
		if i > 0 && i%4 == 0 {
			out.WriteString(" ")
		}
		out.WriteString(cellStyle(th, c).Render(string(CellRune(th.Symbols, c))))
	}
	return out.String()
}

// RenderRuler renders the beat numbers above the grid
func RenderRuler(th *theme.Theme, labelWidth, steps int) string {
	var out strings.Builder
	out.WriteString(strings.Repeat(" ", labelWidth+1))
	for i := 0; i < steps; i += 4 {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(fmt.Sprintf("%-4d", i/4+1))
	}
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(out.String())
}
