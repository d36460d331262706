package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "http://localhost:3344", config.Target.BaseURL)
	assert.True(t, config.Target.ServeSite)
	assert.Equal(t, 3344, config.Target.SitePort)
	assert.Equal(t, "classic", config.Runner.Surface)
	assert.True(t, config.Browser.Headless)
	assert.Equal(t, 30*time.Second, config.Browser.ActionTimeout.Duration())
	assert.Equal(t, 8199, config.Server.Port)
	assert.Equal(t, "gemini", config.LLM.DefaultProvider)
	assert.Equal(t, 15, config.Agent.MaxSteps)

	require.NoError(t, config.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specto.toml")
	content := `
environment = "test"

[target]
base_url = "http://localhost:3344"

[runner]
surface = "hybrid"
screenshot = false

[server]
port = 9100

[browser]
action_timeout = "45s"
dialog_wait = "2s"

[llm]
default_provider = "claude"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test", config.Environment)
	assert.Equal(t, "http://localhost:3344", config.Target.BaseURL)
	assert.Equal(t, "hybrid", config.Runner.Surface)
	assert.False(t, config.Runner.Screenshot)
	assert.Equal(t, 9100, config.Server.Port)
	assert.Equal(t, "claude", config.LLM.DefaultProvider)

	// Duration strings decode into the wrapper type
	assert.Equal(t, 45*time.Second, config.Browser.ActionTimeout.Duration())
	assert.Equal(t, 2*time.Second, config.Browser.DialogWait.Duration())

	// Defaults survive for sections the file does not mention
	assert.Equal(t, 1920, config.Browser.WindowWidth)
	assert.Equal(t, 10*time.Minute, config.Browser.SessionTimeout.Duration())
	assert.Equal(t, "gemini-2.5-flash", config.Gemini.Model)
}

func TestLoadFromFileRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specto.toml")
	content := `
[browser]
action_timeout = "soon"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid duration")
}

// The shipped local config must stay loadable; the runner auto-discovers it.
func TestLoadShippedLocalConfig(t *testing.T) {
	t.Setenv("SPECTO_TARGET_URL", "")

	config, err := LoadFromFile(filepath.Join("..", "..", "deployments", "local", "specto.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3344", config.Target.BaseURL)
	assert.True(t, config.Target.ServeSite)
	assert.Equal(t, 30*time.Second, config.Browser.ActionTimeout.Duration())
	assert.Equal(t, time.Second, config.Browser.DialogWait.Duration())
	assert.Equal(t, 10*time.Minute, config.Browser.SessionTimeout.Duration())
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("does-not-exist.toml")
	assert.Error(t, err)
}

func TestLoadFromFileEmptyPathUsesDefaults(t *testing.T) {
	config, err := LoadFromFile("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3344", config.Target.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPECTO_TARGET_URL", "http://localhost:9999")
	t.Setenv("SPECTO_RUNNER_SURFACE", "ai")
	t.Setenv("SPECTO_SERVER_PORT", "9200")
	t.Setenv("SPECTO_LLM_PROVIDER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	config, err := LoadFromFile("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", config.Target.BaseURL)
	assert.False(t, config.Target.ServeSite, "explicit target disables the replica site")
	assert.Equal(t, "ai", config.Runner.Surface)
	assert.Equal(t, 9200, config.Server.Port)
	assert.Equal(t, "claude", config.LLM.DefaultProvider)
	assert.Equal(t, "test-key", config.Claude.APIKey)
}

func TestValidateRejectsBadProvider(t *testing.T) {
	config := NewDefaultConfig()
	config.LLM.DefaultProvider = "openai"
	assert.Error(t, config.Validate())
}

func TestDefaultModel(t *testing.T) {
	config := NewDefaultConfig()
	assert.Equal(t, "gemini-2.5-flash", config.DefaultModel())

	config.LLM.DefaultProvider = "claude"
	assert.Equal(t, "claude-sonnet-4-20250514", config.DefaultModel())
}

func TestAPIKeyForProvider(t *testing.T) {
	config := NewDefaultConfig()
	config.Gemini.APIKey = "g-key"
	config.Claude.APIKey = "c-key"

	assert.Equal(t, "c-key", config.APIKeyForProvider("claude"))
	assert.Equal(t, "g-key", config.APIKeyForProvider("gemini"))
	assert.Equal(t, "g-key", config.APIKeyForProvider(""))
}
