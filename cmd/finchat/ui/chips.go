package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderChips renders the quick-action chip row. The chip at active
// is highlighted; pass -1 for no selection. Chips wrap onto new lines
// when they would exceed width.
func RenderChips(chips []string, active, width int, styles Styles) string {
	if len(chips) == 0 {
		return ""
	}

	var lines []string
	var row []string
	rowWidth := 0

	for i, chip := range chips {
		style := styles.Chip
		if i == active {
			style = styles.ChipActive
		}
		rendered := style.Render(chip)
		w := lipgloss.Width(rendered)
		if rowWidth > 0 && width > 0 && rowWidth+w > width {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, rendered)
		rowWidth += w
	}
	if len(row) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return strings.Join(lines, "\n")
}
