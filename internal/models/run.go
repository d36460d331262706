package models

import (
	"time"
)

// ScenarioStatus represents the outcome of a single scenario execution
type ScenarioStatus string

const (
	ScenarioStatusPassed  ScenarioStatus = "passed"
	ScenarioStatusFailed  ScenarioStatus = "failed"
	ScenarioStatusSkipped ScenarioStatus = "skipped"
)

// ScenarioResult captures one navigate-act-assert sequence
type ScenarioResult struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"` // site path the scenario navigated to
	Status   ScenarioStatus `json:"status"`
	Result   string         `json:"result,omitempty"` // the probed result value
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// RunRecord is one full pass over the scenario catalog with a single surface
type RunRecord struct {
	ID        string           `json:"id" badgerhold:"key"`
	Surface   string           `json:"surface"` // classic, ai or hybrid
	TargetURL string           `json:"target_url"`
	StartedAt time.Time        `json:"started_at" badgerholdIndex:"StartedAt"`
	Duration  time.Duration    `json:"duration"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// Passed reports whether every executed scenario passed
func (r *RunRecord) Passed() bool {
	for _, s := range r.Scenarios {
		if s.Status == ScenarioStatusFailed {
			return false
		}
	}
	return true
}

// Counts returns passed/failed/skipped totals
func (r *RunRecord) Counts() (passed, failed, skipped int) {
	for _, s := range r.Scenarios {
		switch s.Status {
		case ScenarioStatusPassed:
			passed++
		case ScenarioStatusFailed:
			failed++
		case ScenarioStatusSkipped:
			skipped++
		}
	}
	return
}

// AgentResult is the single structured result returned by the agent surface
// for an autonomous task. Payload is opaque to callers; tests only check the
// success indicator.
type AgentResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Steps   int            `json:"steps"`
	Payload map[string]any `json:"payload,omitempty"`
}
