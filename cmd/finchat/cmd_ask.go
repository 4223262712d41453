package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syedisami/financial-ai-assistant/cmd/finchat/ui"
	"github.com/syedisami/financial-ai-assistant/internal/chat"
)

// askCmd runs a single exchange and prints the rendered answer. It
// goes through the same session/dispatcher/renderer stack as the TUI.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		session, history, err := newSession(client)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		events := make(chan chat.Event, 64)
		session.Subscribe(func(ev chat.Event) {
			events <- ev
		})

		questionText := strings.Join(args, " ")
		if !session.Submit(cmd.Context(), questionText) {
			return fmt.Errorf("question is empty")
		}

		styles := ui.StylesFor(cfg.Chat.Theme)
		for ev := range events {
			switch ev := ev.(type) {
			case chat.MessageAppended:
				msg := ev.Message
				if msg.Sender != chat.SenderBot {
					continue
				}
				fmt.Println(ui.RenderBody(msg.Content, styles))
				if msg.HasTable() {
					fmt.Println(ui.RenderTable(msg.Table, styles))
				}
				if msg.Confidence != nil {
					fmt.Println(styles.Confidence.Render(fmt.Sprintf("Confidence: %.0f%%", *msg.Confidence*100)))
				}
			case chat.ExchangeFinished:
				return nil
			}
		}
		return nil
	},
}
