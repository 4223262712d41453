// Package main provides the finchat CLI entry point: an interactive
// terminal client for the financial assistant backend.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/config"
	"github.com/syedisami/financial-ai-assistant/internal/dispatch"
	"github.com/syedisami/financial-ai-assistant/internal/logging"
	"github.com/syedisami/financial-ai-assistant/internal/render"
	"github.com/syedisami/financial-ai-assistant/internal/store"
)

var (
	// Global flags
	configPath string
	serverURL  string
	question   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd starts the interactive chat when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "finchat",
	Short: "finchat - terminal client for the financial assistant",
	Long: `finchat is a terminal chat client for the financial assistant
backend. Ask about revenue, expenses, assets, or cash flow in natural
language and get answers with optional data tables.

Run without arguments to start the interactive chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if serverURL != "" {
			cfg.Server.BaseURL = serverURL
		}

		logger, err = logging.New(cfg.Logging.File, cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func newPageHTTPClient() *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout()}
}

// newClient builds the backend client with the page-based CSRF token
// source.
func newClient() *dispatch.Client {
	csrf := &dispatch.PageTokenSource{
		PageURL: cfg.Server.BaseURL + cfg.Server.PagePath,
		Client:  newPageHTTPClient(),
		Logger:  logger,
	}
	return dispatch.NewClient(dispatch.ClientConfig{
		BaseURL:    cfg.Server.BaseURL,
		AskPath:    cfg.Server.AskPath,
		FAQPath:    cfg.Server.FAQPath,
		HealthPath: cfg.Server.HealthPath,
		Timeout:    cfg.HTTPTimeout(),
	}, csrf, logger)
}

// newSession wires dispatcher, renderer, and optional history
// recorder into a fresh chat session.
func newSession(client *dispatch.Client) (*chat.Session, *store.History, error) {
	renderer := render.NewRenderer(cfg.FollowUpDelay(), logger)
	dispatcher := dispatch.NewDispatcher(client, renderer, logger)
	session := chat.NewSession(dispatcher)

	var history *store.History
	if cfg.History.Enabled {
		h, err := store.Open(cfg.History.DatabasePath)
		if err != nil {
			// History is an audit convenience, never a blocker.
			logger.Warn("history store unavailable", zap.Error(err))
		} else {
			history = h
			session.SetRecorder(h)
		}
	}
	return session, history, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "finchat.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&question, "question", "q", "", "pre-fill the input field without submitting")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
