package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
)

func newTestFactory(t *testing.T, defaultProvider string) *ProviderFactory {
	t.Helper()
	config := common.NewDefaultConfig()
	config.LLM.DefaultProvider = defaultProvider
	return NewProviderFactory(config, arbor.NewLogger())
}

func TestDetectProvider(t *testing.T) {
	factory := newTestFactory(t, "gemini")

	tests := []struct {
		model string
		want  ProviderType
	}{
		{"claude-sonnet-4-20250514", ProviderClaude},
		{"claude/claude-sonnet-4-20250514", ProviderClaude},
		{"anthropic/claude-haiku-3", ProviderClaude},
		{"gemini-2.5-flash", ProviderGemini},
		{"gemini/gemini-2.5-flash", ProviderGemini},
		{"google/gemini-2.5-pro", ProviderGemini},
		{"CLAUDE-sonnet", ProviderClaude},
		// empty and unknown models fall back to the default provider
		{"", ProviderGemini},
		{"gpt-4o", ProviderGemini},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, factory.DetectProvider(tt.model), "model %q", tt.model)
	}
}

func TestDetectProviderClaudeDefault(t *testing.T) {
	factory := newTestFactory(t, "claude")
	assert.Equal(t, ProviderClaude, factory.DetectProvider(""))
	assert.Equal(t, ProviderClaude, factory.DetectProvider("unknown-model"))
}

func TestNormalizeModel(t *testing.T) {
	factory := newTestFactory(t, "gemini")

	assert.Equal(t, "claude-sonnet-4-20250514", factory.NormalizeModel("claude/claude-sonnet-4-20250514"))
	assert.Equal(t, "gemini-2.5-flash", factory.NormalizeModel("gemini/gemini-2.5-flash"))
	assert.Equal(t, "gemini-2.5-pro", factory.NormalizeModel("google/gemini-2.5-pro"))
	assert.Equal(t, "claude-haiku-3", factory.NormalizeModel("anthropic/claude-haiku-3"))
	assert.Equal(t, "gemini-2.5-flash", factory.NormalizeModel("gemini-2.5-flash"))
}

func TestRateLimiterConfiguration(t *testing.T) {
	config := common.NewDefaultConfig()
	config.LLM.RequestsPerMinute = 0
	factory := NewProviderFactory(config, arbor.NewLogger())
	assert.Nil(t, factory.limiter, "zero rpm disables the limiter")

	config.LLM.RequestsPerMinute = 30
	factory = NewProviderFactory(config, arbor.NewLogger())
	assert.NotNil(t, factory.limiter)
}
