package ui

import (
	"testing"
)

// The classic suite drives every scenario through deterministic selectors.
// It needs no LLM credential and runs entirely against the replica site.

func TestClassicFormFill(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("form_fill")
}

func TestClassicButtonClick(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("button_click")
}

func TestClassicCheckbox(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("checkbox")
}

func TestClassicRadioButton(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("radio_button")
}

func TestClassicTableRowInsert(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("table_row_insert")
}

func TestClassicFileUpload(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("file_upload")
}

func TestClassicAlertDialog(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("alert_dialog")
}

func TestClassicNavigation(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("navigation")
}

func TestClassicButtonListing(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("button_listing")
}

// agent_task has no classic variant; RunScenario records the skip so the
// suite shape stays aligned with the ai and hybrid suites.
func TestClassicAgentTask(t *testing.T) {
	utc := NewUITestContext(t, LoadTestConfig(t), "classic")
	defer utc.Cleanup()
	utc.RunScenario("agent_task")
}
