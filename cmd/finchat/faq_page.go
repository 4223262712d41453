package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/syedisami/financial-ai-assistant/cmd/finchat/ui"
	"github.com/syedisami/financial-ai-assistant/internal/faq"
	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// faqPage is the FAQ browser: a filter box over the static
// question/answer list. Filtering is debounced through faq.Filter;
// the page only ever shows the result of the latest pass. Selecting
// an entry populates the chat input via the shared chip action.
type faqPage struct {
	input    textinput.Model
	filter   *faq.Filter
	visible  []protocol.FAQ
	selected int
	width    int
	styles   ui.Styles
}

func newFAQPage(styles ui.Styles) faqPage {
	ti := textinput.New()
	ti.Placeholder = "Type to filter questions and answers..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return faqPage{input: ti, styles: styles, width: 80}
}

func (p faqPage) Update(msg tea.KeyMsg) (faqPage, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if p.selected > 0 {
			p.selected--
		}
		return p, nil
	case tea.KeyDown:
		if p.selected < len(p.visible)-1 {
			p.selected++
		}
		return p, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.filter.Input(p.input.Value())
	}
	return p, cmd
}

// selectedQuestion returns the question text of the highlighted
// entry, or "" when the list is empty.
func (p faqPage) selectedQuestion() string {
	if p.selected < 0 || p.selected >= len(p.visible) {
		return ""
	}
	return p.visible[p.selected].Question
}

func (p faqPage) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Frequently Asked Questions"))
	sb.WriteString("\n")
	sb.WriteString(p.input.View())
	sb.WriteString("\n\n")

	if len(p.visible) == 0 {
		sb.WriteString(p.styles.Muted.Render("No matching questions."))
		return p.styles.Content.Render(sb.String())
	}

	answerStyle := p.styles.Muted.Width(p.width - 4)
	for i, entry := range p.visible {
		marker := "  "
		qStyle := p.styles.Bold
		if i == p.selected {
			marker = p.styles.Prompt.Render("> ")
			qStyle = qStyle.Foreground(p.styles.Theme.Primary)
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, qStyle.Render(entry.Question)))
		sb.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(answerStyle.Render(entry.Answer)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(p.styles.Muted.Render("↑/↓: select • Enter: use question • Esc: back to chat"))
	return p.styles.Content.Render(sb.String())
}
