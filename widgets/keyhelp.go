package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-drum/theme"
)

const columnGap = "    "

// Binding is one key and what it does
type Binding struct {
	Key  string
	Desc string
}

// HelpColumn is a titled group of bindings
type HelpColumn struct {
	Title    string
	Bindings []Binding
}

// RenderHelp lays the columns out side by side, keys in the accent color and
// descriptions muted. Keys within a column share one width.
func RenderHelp(th *theme.Theme, columns ...HelpColumn) string {
	keyStyle := lipgloss.NewStyle().Foreground(th.Accent())
	descStyle := lipgloss.NewStyle().Foreground(th.Muted())
	titleStyle := lipgloss.NewStyle().Foreground(th.FG()).Bold(true)

	blocks := make([]string, 0, 2*len(columns))
	for i, col := range columns {
		keyWidth := 0
		for _, b := range col.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Key))
		}

		var lines []string
		if col.Title != "" {
			lines = append(lines, titleStyle.Render(col.Title))
		}
		for _, b := range col.Bindings {
			lines = append(lines, keyStyle.Width(keyWidth+2).Render(b.Key)+descStyle.Render(b.Desc))
		}

		if i > 0 {
			blocks = append(blocks, columnGap)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
