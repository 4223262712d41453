package ui

import (
	"strings"

	"github.com/syedisami/financial-ai-assistant/internal/render"
)

// RenderBody renders a message body's markup blocks: bullet runs as
// list blocks, other non-empty lines as paragraphs, or plain line
// breaks when the content carries no bullet marker.
func RenderBody(content string, styles Styles) string {
	blocks := render.Blocks(content)

	var parts []string
	for _, b := range blocks {
		switch b.Kind {
		case render.KindList:
			var sb strings.Builder
			for i, item := range b.Lines {
				if i > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(styles.Prompt.Render("  " + render.BulletMarker + " "))
				sb.WriteString(styles.Body.Render(item))
			}
			parts = append(parts, sb.String())
		case render.KindParagraph:
			parts = append(parts, styles.Body.Render(b.Lines[0]))
		default: // KindLines
			parts = append(parts, styles.Body.Render(strings.Join(b.Lines, "\n")))
		}
	}
	return strings.Join(parts, "\n")
}
