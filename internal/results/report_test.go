package results

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/models"
)

func sampleRun() *models.RunRecord {
	return &models.RunRecord{
		ID:        "run_test",
		Surface:   "classic",
		TargetURL: "http://localhost:3344",
		StartedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		Duration:  95 * time.Second,
		Scenarios: []models.ScenarioResult{
			{Name: "form_fill", Path: "/text-box", Status: models.ScenarioStatusPassed, Result: "Name:Alex Morgan", Duration: 4 * time.Second},
			{Name: "button_click", Path: "/buttons", Status: models.ScenarioStatusFailed, Error: "element #clickBtn not found", Duration: 31 * time.Second},
			{Name: "agent_task", Path: "/text-box", Status: models.ScenarioStatusSkipped, Result: "no variant for surface classic"},
		},
	}
}

func TestBuildMarkdown(t *testing.T) {
	markdown := BuildMarkdown(sampleRun())

	assert.Contains(t, markdown, "# Run Report run_test")
	assert.Contains(t, markdown, "**Surface**: classic")
	assert.Contains(t, markdown, "1 passed, 1 failed, 1 skipped")
	assert.Contains(t, markdown, "| form_fill | passed |")
	assert.Contains(t, markdown, "element #clickBtn not found")
	assert.NotContains(t, markdown, "\n\n\n")
}

func TestConvertMarkdownToPDF(t *testing.T) {
	pdfBytes, err := ConvertMarkdownToPDF(BuildMarkdown(sampleRun()))
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)

	// pdfcpu validation catches malformed output the renderer could emit
	conf := model.NewDefaultConfiguration()
	err = api.Validate(bytes.NewReader(pdfBytes), conf)
	assert.NoError(t, err)
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	writer := NewReportWriter(dir, arbor.NewLogger())

	mdPath, pdfPath, err := writer.WriteReport(sampleRun())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "run_test.md"), mdPath)
	assert.Equal(t, filepath.Join(dir, "run_test.pdf"), pdfPath)
	assert.FileExists(t, mdPath)
	assert.FileExists(t, pdfPath)
}
