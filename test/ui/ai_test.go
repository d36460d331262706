package ui

import (
	"testing"
)

// The ai suite drives the same scenarios through natural-language
// instructions. Every test needs an LLM credential.

func aiContext(t *testing.T) *UITestContext {
	t.Helper()
	cfg := LoadTestConfig(t)
	cfg.RequireAPIKey(t)
	return NewUITestContext(t, cfg, "ai")
}

func TestAIFormFill(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("form_fill")
}

func TestAIButtonClick(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("button_click")
}

func TestAICheckbox(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("checkbox")
}

func TestAIRadioButton(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("radio_button")
}

func TestAITableRowInsert(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("table_row_insert")
}

func TestAIFileUpload(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("file_upload")
}

func TestAIAlertDialog(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("alert_dialog")
}

func TestAINavigation(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("navigation")
}

func TestAIButtonListing(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("button_listing")
}

func TestAIAgentTask(t *testing.T) {
	utc := aiContext(t)
	defer utc.Cleanup()
	utc.RunScenario("agent_task")
}
