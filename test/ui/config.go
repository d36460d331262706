package ui

import (
	"os"
	"testing"
)

// TestConfig holds configuration for UI tests
type TestConfig struct {
	TargetURL  string
	APIKey     bool // an LLM credential is available
	UploadFile string
}

// LoadTestConfig reads test configuration from the environment. Tests are
// skipped when no target URL is set so plain `go test ./...` stays green;
// the test runner always sets SPECTO_TARGET_URL.
func LoadTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	targetURL := os.Getenv("SPECTO_TARGET_URL")
	if targetURL == "" {
		t.Skip("SPECTO_TARGET_URL not set; run via the test runner")
	}

	uploadFile := os.Getenv("SPECTO_UPLOAD_FILE")
	if uploadFile == "" {
		uploadFile = "../../testdata/upload/sample.txt"
	}

	hasKey := os.Getenv("GEMINI_API_KEY") != "" ||
		os.Getenv("GOOGLE_API_KEY") != "" ||
		os.Getenv("ANTHROPIC_API_KEY") != ""

	return &TestConfig{
		TargetURL:  targetURL,
		APIKey:     hasKey,
		UploadFile: uploadFile,
	}
}

// RequireAPIKey skips the test when no LLM credential is configured.
// The ai and hybrid suites need one; the classic suite never does.
func (c *TestConfig) RequireAPIKey(t *testing.T) {
	t.Helper()
	if !c.APIKey {
		t.Skip("no GEMINI_API_KEY or ANTHROPIC_API_KEY set; skipping LLM-backed test")
	}
}
