package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that decodes from TOML duration strings like
// "30s" or "10m". go-toml only decodes into types with UnmarshalText.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the wrapped time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Target      TargetConfig  `toml:"target"`
	Browser     BrowserConfig `toml:"browser"`
	Runner      RunnerConfig  `toml:"runner"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
	LLM         LLMConfig     `toml:"llm"`
	Agent       AgentConfig   `toml:"agent"`
}

// TargetConfig identifies the site the scenarios run against. The catalog's
// classic selectors address the bundled replica site, so by default the
// replica is served and targeted; point base_url at a live deployment carrying
// the same element IDs and set serve_site = false to run against it instead.
type TargetConfig struct {
	BaseURL   string `toml:"base_url" validate:"required,url"`
	ServeSite bool   `toml:"serve_site"` // start the bundled replica site before running
	SitePort  int    `toml:"site_port"`  // port the replica site listens on
}

// BrowserConfig controls the chromedp browser session
type BrowserConfig struct {
	Headless       bool          `toml:"headless"`
	WindowWidth    int           `toml:"window_width" validate:"gt=0"`
	WindowHeight   int           `toml:"window_height" validate:"gt=0"`
	ActionTimeout  Duration `toml:"action_timeout"`  // per-action suspension limit
	DialogWait     Duration `toml:"dialog_wait"`     // fixed wait used for dialog handling
	SessionTimeout Duration `toml:"session_timeout"` // whole suite budget
}

// RunnerConfig controls the freestanding scenario runner
type RunnerConfig struct {
	Surface    string `toml:"surface" validate:"oneof=classic ai hybrid"` // which automation surface to run
	Schedule   string `toml:"schedule"`                                   // optional cron schedule for repeat runs
	Screenshot bool   `toml:"screenshot"`                                 // capture a screenshot per scenario
	ResultsDir string `toml:"results_dir"`
	UploadFile string `toml:"upload_file"` // sample file for the upload scenario
}

// ServerConfig controls the runner's status endpoint
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration for the run-history store
type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// LLMConfig contains provider-neutral LLM settings
type LLMConfig struct {
	DefaultProvider   string  `toml:"default_provider" validate:"oneof=gemini claude"`
	RequestsPerMinute float64 `toml:"requests_per_minute"` // rate limit across providers, 0 = unlimited
}

// AgentConfig configures the autonomous agent surface
type AgentConfig struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	Instructions string `toml:"instructions"` // free-text system instructions prepended to every goal
	MaxSteps     int    `toml:"max_steps" validate:"gte=1"`
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Target: TargetConfig{
			BaseURL:   "http://localhost:3344",
			ServeSite: true,
			SitePort:  3344,
		},
		Browser: BrowserConfig{
			Headless:       true,
			WindowWidth:    1920,
			WindowHeight:   1080,
			ActionTimeout:  Duration(30 * time.Second),
			DialogWait:     Duration(time.Second),
			SessionTimeout: Duration(10 * time.Minute),
		},
		Runner: RunnerConfig{
			Surface:    "classic",
			Screenshot: true,
			ResultsDir: "results",
			UploadFile: "testdata/upload/sample.txt",
		},
		Server: ServerConfig{
			Port: 8199,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "data/specto",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			Temperature: 0.2,
			MaxTokens:   4096,
		},
		LLM: LLMConfig{
			DefaultProvider:   "gemini",
			RequestsPerMinute: 30,
		},
		Agent: AgentConfig{
			Provider: "gemini",
			MaxSteps: 15,
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applying defaults first
// and environment overrides last. Passing an empty path skips the file step.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultModel returns the model name for the configured default provider.
func (c *Config) DefaultModel() string {
	if c.LLM.DefaultProvider == "claude" {
		return c.Claude.Model
	}
	return c.Gemini.Model
}

// Validate checks the configuration against the struct validation tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SPECTO_* environment variables over the loaded config.
// API keys are the one surface always taken from the environment when present,
// since the NL and agent surfaces fail without a credential.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SPECTO_ENV"); env != "" {
		config.Environment = env
	}

	if baseURL := os.Getenv("SPECTO_TARGET_URL"); baseURL != "" {
		// An explicit target points at an already-running site
		config.Target.BaseURL = baseURL
		config.Target.ServeSite = false
	}

	if headless := os.Getenv("SPECTO_BROWSER_HEADLESS"); headless != "" {
		if b, err := strconv.ParseBool(headless); err == nil {
			config.Browser.Headless = b
		}
	}

	if surface := os.Getenv("SPECTO_RUNNER_SURFACE"); surface != "" {
		config.Runner.Surface = surface
	}

	if port := os.Getenv("SPECTO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if path := os.Getenv("SPECTO_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if level := os.Getenv("SPECTO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}

	if provider := os.Getenv("SPECTO_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = provider
	}

	if model := os.Getenv("SPECTO_AGENT_MODEL"); model != "" {
		config.Agent.Model = model
	}
}

// APIKeyForProvider returns the configured credential for a provider name.
// Empty means the natural-language and agent surfaces cannot run.
func (c *Config) APIKeyForProvider(provider string) string {
	switch provider {
	case "claude":
		return c.Claude.APIKey
	default:
		return c.Gemini.APIKey
	}
}
