// Package config loads the finchat configuration: YAML file with
// defaults, overridden by FINCHAT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all finchat configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Chat    ChatConfig    `yaml:"chat"`
	FAQ     FAQConfig     `yaml:"faq"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig locates the assistant backend.
type ServerConfig struct {
	BaseURL    string `yaml:"base_url"`
	AskPath    string `yaml:"ask_path"`
	FAQPath    string `yaml:"faq_path"`
	HealthPath string `yaml:"health_path"`
	PagePath   string `yaml:"page_path"` // chat page, for the CSRF token lookup
	Timeout    string `yaml:"timeout"`
}

// ChatConfig tunes chat behavior.
type ChatConfig struct {
	FollowUpDelay string `yaml:"follow_up_delay"` // greeting follow-up message
	Theme         string `yaml:"theme"`           // "light" or "dark"
}

// FAQConfig configures the FAQ filter.
type FAQConfig struct {
	File          string `yaml:"file"` // local fallback corpus
	DebounceDelay string `yaml:"debounce_delay"`
}

// HistoryConfig configures the conversation log.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8000",
			AskPath:    "/chatbot/api/ask/",
			FAQPath:    "/chatbot/api/faqs/",
			HealthPath: "/chatbot/api/health/",
			PagePath:   "/chatbot/chat/",
			Timeout:    "60s",
		},
		Chat: ChatConfig{
			FollowUpDelay: "2s",
			Theme:         "dark",
		},
		FAQ: FAQConfig{
			File:          "faqs.yaml",
			DebounceDelay: "300ms",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join("data", "finchat.db"),
		},
		Logging: LoggingConfig{
			File:  "finchat.log",
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies FINCHAT_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FINCHAT_SERVER"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("FINCHAT_TIMEOUT"); v != "" {
		c.Server.Timeout = v
	}
	if v := os.Getenv("FINCHAT_THEME"); v != "" {
		c.Chat.Theme = v
	}
	if v := os.Getenv("FINCHAT_FAQ_FILE"); v != "" {
		c.FAQ.File = v
	}
	if v := os.Getenv("FINCHAT_DB"); v != "" {
		c.History.DatabasePath = v
	}
	if v := os.Getenv("FINCHAT_LOG"); v != "" {
		c.Logging.File = v
	}
}

// HTTPTimeout returns the parsed request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return parseDuration(c.Server.Timeout, 60*time.Second)
}

// FollowUpDelay returns the parsed greeting follow-up delay.
func (c *Config) FollowUpDelay() time.Duration {
	return parseDuration(c.Chat.FollowUpDelay, 2*time.Second)
}

// DebounceDelay returns the parsed FAQ filter quiescence delay.
func (c *Config) DebounceDelay() time.Duration {
	return parseDuration(c.FAQ.DebounceDelay, 300*time.Millisecond)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
