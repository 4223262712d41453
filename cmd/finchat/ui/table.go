package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/syedisami/financial-ai-assistant/internal/chat"
)

// RenderTable renders a bot message's tabular artifact: header row,
// divider, data rows. Empty tables render as nothing.
func RenderTable(t *chat.Table, styles Styles) string {
	if t == nil || len(t.Rows) == 0 {
		return ""
	}

	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	var sb strings.Builder
	for i := 0; i < cols; i++ {
		h := ""
		if i < len(t.Headers) {
			h = t.Headers[i]
		}
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < cols-1 {
			sb.WriteString(sepStyle.Render("│"))
		}
	}
	sb.WriteString("\n")

	total := cols - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			if i < cols-1 {
				sb.WriteString(sepStyle.Render("│"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
