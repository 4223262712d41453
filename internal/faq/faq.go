// Package faq implements the debounced substring filter over the
// static question/answer list. The filter is a peer of the chat
// timeline and never touches it.
package faq

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

type fileDoc struct {
	FAQs []protocol.FAQ `yaml:"faqs"`
}

// LoadFile reads FAQ entries from a local YAML file, the offline
// fallback when the backend FAQ endpoint is unreachable.
func LoadFile(path string) ([]protocol.FAQ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file: %w", err)
	}
	return doc.FAQs, nil
}

// Match returns the entries whose question or answer contains the
// term, case-insensitively. The empty term matches everything.
func Match(entries []protocol.FAQ, term string) []protocol.FAQ {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]protocol.FAQ, len(entries))
		copy(out, entries)
		return out
	}

	var out []protocol.FAQ
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Question), term) ||
			strings.Contains(strings.ToLower(e.Answer), term) {
			out = append(out, e)
		}
	}
	return out
}
