// uitest_context.go - shared UI test context used by the classic, ai and
// hybrid suites. NOTE: this is NOT a test file - it contains shared test
// infrastructure.

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/agent"
	"github.com/ternarybob/specto/internal/ai"
	"github.com/ternarybob/specto/internal/browser"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/llm"
	"github.com/ternarybob/specto/internal/scenarios"
)

// ScenarioTimeout bounds one scenario including LLM round trips
const ScenarioTimeout = 3 * time.Minute

// newSuiteConfig builds the runner config for one suite. Loading with an
// empty path applies env overrides, which is where the API keys come from.
func newSuiteConfig(cfg *TestConfig, surface string) (*common.Config, error) {
	config, err := common.LoadFromFile("")
	if err != nil {
		return nil, err
	}
	config.Target.BaseURL = cfg.TargetURL
	config.Runner.Surface = surface
	config.Runner.UploadFile = cfg.UploadFile
	config.Logging.Level = "warn"
	return config, nil
}

// UITestContext holds shared state for UI tests
type UITestContext struct {
	T       *testing.T
	Surface string
	Harness *scenarios.Harness

	// Internal cleanup functions, run LIFO
	cleanup []func()

	screenshotNum int
}

// NewUITestContext starts a browser session (plus the LLM surfaces when the
// suite needs them) against the configured target.
func NewUITestContext(t *testing.T, cfg *TestConfig, surface string) *UITestContext {
	t.Helper()

	config, err := newSuiteConfig(cfg, surface)
	if err != nil {
		t.Fatalf("Failed to build suite config: %v", err)
	}

	logger := arbor.NewLogger().WithLevelFromString("warn")

	session, err := browser.NewSession(&config.Browser, logger)
	if err != nil {
		t.Fatalf("Failed to start browser session: %v", err)
	}

	utc := &UITestContext{
		T:       t,
		Surface: surface,
		Harness: &scenarios.Harness{
			Browser:    session,
			BaseURL:    config.Target.BaseURL,
			UploadFile: config.Runner.UploadFile,
			DialogWait: config.Browser.DialogWait.Duration(),
		},
	}
	utc.cleanup = append(utc.cleanup, func() { session.Close() })

	if surface == "ai" || surface == "hybrid" {
		factory := llm.NewProviderFactory(config, logger)
		utc.Harness.Language = ai.NewSurface(session, factory, config.DefaultModel(), logger)
		utc.Harness.Agent = agent.New(session, factory, &config.Agent, logger)
		utc.cleanup = append(utc.cleanup, func() { factory.Close() })
	}

	return utc
}

// Cleanup releases all resources. Call this with defer.
func (utc *UITestContext) Cleanup() {
	for i := len(utc.cleanup) - 1; i >= 0; i-- {
		utc.cleanup[i]()
	}
}

// Screenshot takes a screenshot with a sequential number prefix
func (utc *UITestContext) Screenshot(name string) {
	utc.screenshotNum++
	fullName := fmt.Sprintf("%02d_%s_%s", utc.screenshotNum, utc.Surface, name)
	if err := TakeScreenshot(context.Background(), utc.Harness.Browser, fullName); err != nil {
		utc.T.Logf("Warning: failed to take screenshot: %v", err)
	}
}

// RunScenario executes the named scenario on this suite's surface and fails
// the test when the scenario does.
func (utc *UITestContext) RunScenario(name string) {
	utc.T.Helper()

	scenario, ok := scenarios.ByName(name)
	if !ok {
		utc.T.Fatalf("Unknown scenario %q", name)
	}

	fn := scenario.Variant(utc.Surface)
	if fn == nil {
		utc.T.Skipf("Scenario %q has no %s variant", name, utc.Surface)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ScenarioTimeout)
	defer cancel()

	outcome, err := fn(ctx, utc.Harness)
	utc.Screenshot(name)

	if errors.Is(err, scenarios.ErrLanguageUnavailable) {
		utc.T.Skipf("Scenario %q needs the language surface: %v", name, err)
	}
	if err != nil {
		utc.T.Fatalf("Scenario %q failed: %v", name, err)
	}
	if strings.TrimSpace(outcome) == "" {
		utc.T.Fatalf("Scenario %q produced an empty result", name)
	}
	utc.T.Logf("Scenario %q passed: %s", name, outcome)
}
