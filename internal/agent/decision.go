package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StepDecision is one planned step in an agent task
type StepDecision struct {
	Action   string `json:"action"` // navigate, click, fill, done, fail
	Selector string `json:"selector,omitempty"`
	Value    string `json:"value,omitempty"`
	URL      string `json:"url,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// ParseStepDecision decodes a provider response into a StepDecision
func ParseStepDecision(response string) (*StepDecision, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var decision StepDecision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return nil, fmt.Errorf("failed to parse step decision %q: %w", response, err)
	}

	switch decision.Action {
	case "navigate":
		if decision.URL == "" {
			return nil, fmt.Errorf("navigate step is missing a url")
		}
	case "click":
		if decision.Selector == "" {
			return nil, fmt.Errorf("click step is missing a selector")
		}
	case "fill":
		if decision.Selector == "" {
			return nil, fmt.Errorf("fill step is missing a selector")
		}
	case "done", "fail":
	default:
		return nil, fmt.Errorf("unknown agent action %q", decision.Action)
	}

	return &decision, nil
}
