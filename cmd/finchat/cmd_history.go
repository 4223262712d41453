package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/syedisami/financial-ai-assistant/cmd/finchat/ui"
	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/store"
)

var historyLimit int

// historyCmd lists recent exchanges from the conversation log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent question/answer exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled in the configuration")
		}

		h, err := store.Open(cfg.History.DatabasePath)
		if err != nil {
			return err
		}
		defer h.Close()

		exchanges, err := h.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(exchanges) == 0 {
			fmt.Println("No exchanges recorded yet.")
			return nil
		}

		table := &chat.Table{
			Headers: []string{"When", "Question", "Answer", "Confidence"},
		}
		for _, e := range exchanges {
			table.Rows = append(table.Rows, []string{
				e.CreatedAt.Format("2006-01-02 15:04"),
				truncate(e.Question, 48),
				truncate(e.Answer, 64),
				fmt.Sprintf("%.0f%%", e.Confidence*100),
			})
		}
		fmt.Println(ui.RenderTable(table, ui.StylesFor(cfg.Chat.Theme)))
		return nil
	},
}

// truncate shortens s to max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of exchanges to show")
}
