// This file implements the interactive chat interface using bubbletea.
// The model is a pure presentation adapter: it mirrors the timeline
// from the session's event stream and never mutates chat state except
// through Session methods.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syedisami/financial-ai-assistant/cmd/finchat/ui"
	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/dispatch"
	"github.com/syedisami/financial-ai-assistant/internal/faq"
	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// Messages for tea updates
type (
	chatEventMsg struct{ event chat.Event }
	faqResultMsg struct {
		term    string
		matches []protocol.FAQ
	}
	bootstrapMsg struct {
		faqs     []protocol.FAQ
		fromFile bool
		healthy  bool
		probed   bool
	}
	faqReloadMsg struct{ entries []protocol.FAQ }
)

// chatModel is the main model for the interactive chat interface.
type chatModel struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles

	// Core wiring
	session    *chat.Session
	client     *dispatch.Client
	events     chan chat.Event
	faqResults chan faqResultMsg
	faqReloads chan []protocol.FAQ
	faqWatcher *faq.Watcher
	logger     *zap.Logger

	// Timeline mirror, driven exclusively by session events
	messages    []chat.Message
	suggestions []string
	typing      bool
	locked      bool

	// Chip selection
	chipFocus bool
	chipIndex int

	// FAQ page
	showFAQ bool
	faqPage faqPage

	// Clear-all confirmation
	confirmingClear bool

	// Backend health, probed once at startup
	healthy bool
	probed  bool

	width  int
	height int
	ready  bool
}

// initChat builds the chat model, its debounced FAQ filter, and the
// subscription to the session's event stream.
func initChat(session *chat.Session, client *dispatch.Client, prefill string) *chatModel {
	styles := ui.StylesFor(cfg.Chat.Theme)

	ta := textarea.New()
	ta.Placeholder = "Ask about your financial data... (Enter to send, Alt+Enter for a new line)"
	ta.Prompt = "│ "
	ta.CharLimit = 2048
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()
	if prefill != "" {
		ta.SetValue(prefill)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	m := &chatModel{
		textarea:   ta,
		viewport:   vp,
		spinner:    sp,
		styles:     styles,
		session:    session,
		client:     client,
		events:     make(chan chat.Event, 64),
		faqResults: make(chan faqResultMsg, 8),
		faqReloads: make(chan []protocol.FAQ, 4),
		logger:     logger,
		chipIndex:  -1,
		faqPage:    newFAQPage(styles),
	}

	m.faqPage.filter = faq.NewFilter(nil, cfg.DebounceDelay(), func(term string, matches []protocol.FAQ) {
		m.faqResults <- faqResultMsg{term: term, matches: matches}
	})

	session.Subscribe(func(ev chat.Event) {
		// Non-blocking: after quit nothing drains the queue, and a
		// late exchange goroutine must never wedge on it.
		select {
		case m.events <- ev:
		default:
			m.logger.Warn("dropping chat event, queue full")
		}
	})
	return m
}

func (m *chatModel) Init() tea.Cmd {
	m.session.Seed()
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForEvent(),
		m.waitForFAQResult(),
		m.waitForFAQReload(),
		m.bootstrap(),
	)
}

// waitForEvent pumps one session event into the update loop.
func (m *chatModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return chatEventMsg{event: <-m.events}
	}
}

// waitForFAQResult pumps one debounced filter pass result.
func (m *chatModel) waitForFAQResult() tea.Cmd {
	return func() tea.Msg {
		return <-m.faqResults
	}
}

// waitForFAQReload pumps one corpus reload from the file watcher.
func (m *chatModel) waitForFAQReload() tea.Cmd {
	return func() tea.Msg {
		return faqReloadMsg{entries: <-m.faqReloads}
	}
}

// startFAQWatcher tracks the local FAQ file. Only used when the chat
// is running off the file fallback; a remote corpus is not watched.
func (m *chatModel) startFAQWatcher() {
	w, err := faq.NewWatcher(cfg.FAQ.File, func(entries []protocol.FAQ) {
		// Non-blocking: a dropped reload is replaced by the next write.
		select {
		case m.faqReloads <- entries:
		default:
		}
	}, m.logger)
	if err != nil {
		m.logger.Warn("FAQ watcher unavailable", zap.Error(err))
		return
	}
	if err := w.Start(context.Background()); err != nil {
		m.logger.Warn("FAQ watcher failed to start", zap.Error(err))
		w.Close()
		return
	}
	m.faqWatcher = w
}

// bootstrap fetches the FAQ corpus and probes backend health in
// parallel. Neither failure blocks the chat.
func (m *chatModel) bootstrap() tea.Cmd {
	client := m.client
	log := m.logger
	return func() tea.Msg {
		var (
			faqs     []protocol.FAQ
			fromFile bool
			healthy  bool
			probed   bool
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			entries, err := client.FAQs(ctx)
			if err != nil {
				log.Warn("FAQ fetch failed, trying local file", zap.Error(err))
				if local, lerr := faq.LoadFile(cfg.FAQ.File); lerr == nil {
					entries = local
					fromFile = true
				}
			}
			faqs = entries
			return nil
		})
		g.Go(func() error {
			h, err := client.Health(ctx)
			if err != nil {
				log.Warn("health probe failed", zap.Error(err))
				return nil
			}
			healthy = h.Healthy()
			probed = true
			return nil
		})
		_ = g.Wait()
		return bootstrapMsg{faqs: faqs, fromFile: fromFile, healthy: healthy, probed: probed}
	}
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
		if m.showFAQ {
			var cmd tea.Cmd
			m.faqPage, cmd = m.faqPage.Update(msg)
			return m, cmd
		}
		if !m.locked {
			m.textarea, taCmd = m.textarea.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.typing {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case chatEventMsg:
		m.applyEvent(msg.event)
		return m, tea.Batch(m.waitForEvent(), m.spinner.Tick)

	case faqResultMsg:
		m.faqPage.visible = msg.matches
		m.faqPage.selected = 0
		return m, m.waitForFAQResult()

	case bootstrapMsg:
		m.healthy = msg.healthy
		m.probed = msg.probed
		m.faqPage.filter.SetEntries(msg.faqs)
		m.faqPage.visible = msg.faqs
		if msg.fromFile {
			m.startFAQWatcher()
		}
		return m, nil

	case faqReloadMsg:
		m.faqPage.filter.SetEntries(msg.entries)
		m.faqPage.visible = faq.Match(msg.entries, m.faqPage.input.Value())
		if m.faqPage.selected >= len(m.faqPage.visible) {
			m.faqPage.selected = 0
		}
		return m, m.waitForFAQReload()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd, spCmd)
}

// handleKey processes global key bindings. It reports whether the key
// was consumed.
func (m *chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// A pending clear-all confirmation captures every key.
	if m.confirmingClear {
		m.confirmingClear = false
		if s := msg.String(); s == "y" || s == "Y" {
			m.session.Clear()
		}
		return m, nil, true
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.faqWatcher != nil {
			m.faqWatcher.Close()
		}
		return m, tea.Quit, true

	case tea.KeyCtrlX:
		m.confirmingClear = true
		return m, nil, true

	case tea.KeyCtrlF:
		// Focus the input wherever we are.
		m.showFAQ = false
		m.chipFocus = false
		m.textarea.Focus()
		return m, textarea.Blink, true

	case tea.KeyCtrlO:
		m.showFAQ = !m.showFAQ
		if m.showFAQ {
			m.textarea.Blur()
			m.faqPage.input.Focus()
		} else {
			m.faqPage.input.Blur()
			m.textarea.Focus()
		}
		return m, nil, true

	case tea.KeyTab:
		if !m.showFAQ && len(m.suggestions) > 0 {
			if !m.chipFocus {
				m.chipFocus = true
				m.chipIndex = 0
			} else {
				m.chipIndex = (m.chipIndex + 1) % len(m.suggestions)
			}
			return m, nil, true
		}

	case tea.KeyEsc:
		if m.showFAQ {
			m.showFAQ = false
			m.faqPage.input.Blur()
			m.textarea.Focus()
			return m, nil, true
		}
		if m.chipFocus {
			m.chipFocus = false
			m.chipIndex = -1
			return m, nil, true
		}

	case tea.KeyEnter:
		if m.showFAQ {
			// Picking a FAQ entry populates the input, never submits.
			if q := m.faqPage.selectedQuestion(); q != "" {
				m.populateInput(q)
			}
			return m, textarea.Blink, true
		}
		if m.chipFocus {
			m.populateInput(m.suggestions[m.chipIndex])
			return m, textarea.Blink, true
		}
		if msg.Alt {
			// Modifier inserts a literal line break instead.
			if !m.locked {
				m.textarea.InsertString("\n")
			}
			return m, nil, true
		}
		return m, m.submit(), true
	}

	return m, nil, false
}

// populateInput implements the shared chip action: fill the field and
// focus it, no auto-submit.
func (m *chatModel) populateInput(text string) {
	m.showFAQ = false
	m.chipFocus = false
	m.chipIndex = -1
	m.textarea.SetValue(text)
	m.textarea.Focus()
}

// submit stages the current input for one exchange. The session
// rejects empty input and overlapping submissions, so the field is
// cleared and locked only on acceptance.
func (m *chatModel) submit() tea.Cmd {
	if !m.session.Submit(context.Background(), m.textarea.Value()) {
		return nil
	}
	m.locked = true
	m.textarea.Reset()
	m.textarea.Blur()
	return m.spinner.Tick
}

// applyEvent folds one session event into the view mirror.
func (m *chatModel) applyEvent(ev chat.Event) {
	switch ev := ev.(type) {
	case chat.MessageAppended:
		m.messages = append(m.messages, ev.Message)
		m.viewport.SetContent(m.renderTimeline())
		m.viewport.GotoBottom()
	case chat.SuggestionsReplaced:
		m.suggestions = ev.Suggestions
		m.chipFocus = false
		m.chipIndex = -1
	case chat.TypingShown:
		m.typing = true
	case chat.TypingHidden:
		m.typing = false
	case chat.TimelineCleared:
		m.messages = nil
		m.viewport.SetContent("")
	case chat.ExchangeFinished:
		// Unconditional re-enable, on every exit path.
		m.locked = false
		m.textarea.Focus()
	}
}

func (m *chatModel) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 2
	footerHeight := 2
	chipHeight := 4
	inputHeight := 5

	vpHeight := height - headerHeight - footerHeight - chipHeight - inputHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width-2, vpHeight)
		m.viewport.SetContent(m.renderTimeline())
		m.ready = true
	} else {
		m.viewport.Width = width - 2
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width - 4)
	m.faqPage.width = width - 2
}

func (m *chatModel) renderTimeline() string {
	var sb strings.Builder
	for _, msg := range m.messages {
		if msg.Sender == chat.SenderUser {
			sb.WriteString(m.styles.Bold.Foreground(m.styles.Theme.Accent).Render("You"))
			sb.WriteString("\n")
			sb.WriteString(m.styles.UserInput.Render(msg.Content))
			sb.WriteString("\n\n")
			continue
		}

		sb.WriteString(m.styles.Bold.Foreground(m.styles.Theme.Primary).Render("Assistant"))
		sb.WriteString("\n")
		sb.WriteString(ui.RenderBody(msg.Content, m.styles))
		sb.WriteString("\n")
		if msg.HasTable() {
			sb.WriteString(ui.RenderTable(msg.Table, m.styles))
		}
		if msg.Confidence != nil {
			sb.WriteString(m.styles.Confidence.Render(fmt.Sprintf("Confidence: %.0f%%", *msg.Confidence*100)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()

	var body string
	if m.showFAQ {
		body = m.faqPage.View()
	} else {
		body = m.styles.Content.Render(m.viewport.View())
		if m.typing {
			body += "\n" + m.styles.Spinner.Render(m.spinner.View()) + m.styles.Muted.Render(" Assistant is typing...")
		}
	}

	chips := ui.RenderChips(m.suggestions, m.chipIndex, m.width-2, m.styles)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1)
	input := inputStyle.Render(m.textarea.View())

	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, chips, input, footer)
}

func (m *chatModel) renderHeader() string {
	title := m.styles.Header.Render("Financial Assistant")

	var status string
	switch {
	case m.typing:
		status = m.styles.Warning.Render("● Thinking")
	case m.probed && m.healthy:
		status = m.styles.Success.Render("● Connected")
	case m.probed && !m.healthy:
		status = m.styles.Warning.Render("● Degraded")
	default:
		status = m.styles.Muted.Render("● Unknown")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m *chatModel) renderFooter() string {
	if m.confirmingClear {
		return m.styles.Warning.Render("Clear the conversation and reset suggestions? (y/N)")
	}
	help := "Enter: send • Alt+Enter: new line • Tab: suggestions • Ctrl+O: FAQs • Ctrl+F: focus input • Ctrl+X: clear • Ctrl+C: exit"
	return m.styles.Footer.Render(help)
}

// runChat wires the full stack and runs the TUI event loop.
func runChat() error {
	client := newClient()
	session, history, err := newSession(client)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	model := initChat(session, client, question)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
