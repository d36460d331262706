package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionDecision is the structured UI operation the provider resolves an
// instruction into
type ActionDecision struct {
	Action   string `json:"action"` // "click", "fill", "select" or "none"
	Selector string `json:"selector"`
	Value    string `json:"value,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ObserveDecision is the provider's answer to a yes/no page-state question
type ObserveDecision struct {
	Answer bool   `json:"answer"`
	Detail string `json:"detail,omitempty"`
}

// ExtractDecision carries the text the provider pulled out of the page
type ExtractDecision struct {
	Text string `json:"text"`
}

// stripCodeFence removes a surrounding markdown code fence, which providers
// habitually wrap JSON responses in despite instructions not to
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ParseActionDecision decodes a provider response into an ActionDecision
func ParseActionDecision(response string) (*ActionDecision, error) {
	var decision ActionDecision
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &decision); err != nil {
		return nil, fmt.Errorf("failed to parse action decision %q: %w", response, err)
	}

	switch decision.Action {
	case "click", "fill", "select", "none":
	default:
		return nil, fmt.Errorf("unknown action %q in provider decision", decision.Action)
	}

	if decision.Action != "none" && decision.Selector == "" {
		return nil, fmt.Errorf("provider decision for action %q is missing a selector", decision.Action)
	}

	return &decision, nil
}

// ParseObserveDecision decodes a provider response into an ObserveDecision
func ParseObserveDecision(response string) (*ObserveDecision, error) {
	var decision ObserveDecision
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &decision); err != nil {
		return nil, fmt.Errorf("failed to parse observe decision %q: %w", response, err)
	}
	return &decision, nil
}

// ParseExtractDecision decodes a provider response into an ExtractDecision.
// Providers occasionally answer with bare text instead of JSON; that text is
// accepted as-is since extraction results are opaque payloads to callers.
func ParseExtractDecision(response string) (*ExtractDecision, error) {
	cleaned := stripCodeFence(response)

	var decision ExtractDecision
	if err := json.Unmarshal([]byte(cleaned), &decision); err == nil {
		return &decision, nil
	}

	if cleaned == "" {
		return nil, fmt.Errorf("empty extraction response")
	}
	return &ExtractDecision{Text: cleaned}, nil
}
