package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The ai and hybrid suites take their credential from the environment; the
// suite config must carry it into the provider factory.
func TestSuiteConfigCarriesEnvironmentAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-claude-key")

	cfg := &TestConfig{
		TargetURL:  "http://localhost:3344",
		APIKey:     true,
		UploadFile: "../../testdata/upload/sample.txt",
	}

	config, err := newSuiteConfig(cfg, "ai")
	require.NoError(t, err)

	assert.Equal(t, "test-gemini-key", config.Gemini.APIKey)
	assert.Equal(t, "test-claude-key", config.Claude.APIKey)
	assert.NotEmpty(t, config.APIKeyForProvider(config.LLM.DefaultProvider))

	assert.Equal(t, "http://localhost:3344", config.Target.BaseURL)
	assert.Equal(t, "ai", config.Runner.Surface)
	assert.Equal(t, "../../testdata/upload/sample.txt", config.Runner.UploadFile)
}
