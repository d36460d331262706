// Package runner executes the scenario catalog against a target site on one
// of the automation surfaces and records the outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/agent"
	"github.com/ternarybob/specto/internal/ai"
	"github.com/ternarybob/specto/internal/browser"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/interfaces"
	"github.com/ternarybob/specto/internal/llm"
	"github.com/ternarybob/specto/internal/models"
	"github.com/ternarybob/specto/internal/scenarios"
)

// Notifier receives progress events while a run executes. Implementations
// must not block; the runner is strictly sequential.
type Notifier interface {
	ScenarioStarted(runID, name string)
	ScenarioFinished(runID string, result models.ScenarioResult)
	RunFinished(run *models.RunRecord)
}

// NopNotifier discards all progress events.
type NopNotifier struct{}

func (NopNotifier) ScenarioStarted(string, string) {}

func (NopNotifier) ScenarioFinished(string, models.ScenarioResult) {}

func (NopNotifier) RunFinished(*models.RunRecord) {}

// Runner executes scenarios sequentially over one shared browser session.
type Runner struct {
	config   *common.Config
	logger   arbor.ILogger
	storage  interfaces.RunStorage
	notifier Notifier
}

// New creates a runner. Storage may be nil when persistence is not wanted.
func New(config *common.Config, logger arbor.ILogger, storage interfaces.RunStorage, notifier Notifier) *Runner {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Runner{
		config:   config,
		logger:   logger,
		storage:  storage,
		notifier: notifier,
	}
}

// Execute runs every scenario in the catalog on the configured surface and
// returns the completed run record. Scenario failures are recorded, not
// returned; the error is non-nil only when the run itself could not execute.
func (r *Runner) Execute(ctx context.Context) (*models.RunRecord, error) {
	return r.ExecuteScenarios(ctx, scenarios.Catalog())
}

// ExecuteScenarios runs the given scenarios on the configured surface.
func (r *Runner) ExecuteScenarios(ctx context.Context, list []scenarios.Scenario) (*models.RunRecord, error) {
	surface := r.config.Runner.Surface

	session, err := browser.NewSession(&r.config.Browser, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	harness, generator, err := r.buildHarness(session, surface)
	if err != nil {
		return nil, err
	}
	if generator != nil {
		defer generator.Close()
	}

	run := &models.RunRecord{
		ID:        common.NewRunID(),
		Surface:   surface,
		TargetURL: r.config.Target.BaseURL,
		StartedAt: time.Now(),
	}

	r.logger.Info().
		Str("run_id", run.ID).
		Str("surface", surface).
		Str("target", run.TargetURL).
		Int("scenarios", len(list)).
		Msg("Starting run")

	for _, scenario := range list {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		run.Scenarios = append(run.Scenarios, r.runScenario(ctx, harness, scenario, run.ID))
	}

	run.Duration = time.Since(run.StartedAt)
	passed, failed, skipped := run.Counts()
	r.logger.Info().
		Str("run_id", run.ID).
		Int("passed", passed).
		Int("failed", failed).
		Int("skipped", skipped).
		Str("duration", run.Duration.Round(time.Millisecond).String()).
		Msg("Run complete")

	if r.storage != nil {
		if err := r.storage.SaveRun(run); err != nil {
			r.logger.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to persist run")
		}
	}
	r.notifier.RunFinished(run)

	return run, nil
}

func (r *Runner) runScenario(ctx context.Context, harness *scenarios.Harness, scenario scenarios.Scenario, runID string) models.ScenarioResult {
	result := models.ScenarioResult{
		Name: scenario.Name,
		Path: scenario.Path,
	}

	fn := scenario.Variant(r.config.Runner.Surface)
	if fn == nil {
		result.Status = models.ScenarioStatusSkipped
		result.Result = "no variant for surface " + r.config.Runner.Surface
		r.logger.Debug().Str("scenario", scenario.Name).Msg("Scenario skipped")
		r.notifier.ScenarioFinished(runID, result)
		return result
	}

	r.notifier.ScenarioStarted(runID, scenario.Name)
	r.logger.Info().Str("scenario", scenario.Name).Msg("Running scenario")

	started := time.Now()
	outcome, err := fn(ctx, harness)
	result.Duration = time.Since(started)

	switch {
	case errors.Is(err, scenarios.ErrLanguageUnavailable):
		result.Status = models.ScenarioStatusSkipped
		result.Result = err.Error()
		r.logger.Warn().Str("scenario", scenario.Name).Msg("Scenario skipped: language surface unavailable")
	case err != nil:
		result.Status = models.ScenarioStatusFailed
		result.Error = err.Error()
		r.logger.Error().Err(err).Str("scenario", scenario.Name).Msg("Scenario failed")
		r.captureFailure(harness, scenario.Name, runID)
	case strings.TrimSpace(outcome) == "":
		// Scenarios pass on a non-empty probed result, never on silence
		result.Status = models.ScenarioStatusFailed
		result.Error = "scenario produced an empty result"
		r.logger.Error().Str("scenario", scenario.Name).Msg("Scenario produced an empty result")
		r.captureFailure(harness, scenario.Name, runID)
	default:
		result.Status = models.ScenarioStatusPassed
		result.Result = outcome
		r.logger.Info().
			Str("scenario", scenario.Name).
			Str("duration", result.Duration.Round(time.Millisecond).String()).
			Msg("Scenario passed")
	}

	r.notifier.ScenarioFinished(runID, result)
	return result
}

// captureFailure saves a screenshot next to the run results. Best effort.
func (r *Runner) captureFailure(harness *scenarios.Harness, name, runID string) {
	if !r.config.Runner.Screenshot {
		return
	}
	data, err := harness.Browser.Screenshot(context.Background())
	if err != nil {
		r.logger.Warn().Err(err).Str("scenario", name).Msg("Failed to capture screenshot")
		return
	}
	dir := filepath.Join(r.config.Runner.ResultsDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to create screenshot directory")
		return
	}
	path := filepath.Join(dir, name+".png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Failed to write screenshot")
		return
	}
	r.logger.Debug().Str("path", path).Msg("Failure screenshot saved")
}

// buildHarness wires the surfaces the configured mode needs. The language
// surface and agent are only constructed when an API key is available; the
// classic surface never touches an LLM.
func (r *Runner) buildHarness(session *browser.Session, surface string) (*scenarios.Harness, *llm.ProviderFactory, error) {
	harness := &scenarios.Harness{
		Browser:    session,
		BaseURL:    r.config.Target.BaseURL,
		UploadFile: r.config.Runner.UploadFile,
		DialogWait: r.config.Browser.DialogWait.Duration(),
	}

	if surface != "ai" && surface != "hybrid" {
		return harness, nil, nil
	}

	if r.config.APIKeyForProvider(r.config.LLM.DefaultProvider) == "" {
		r.logger.Warn().
			Str("provider", r.config.LLM.DefaultProvider).
			Msg("No API key configured, language scenarios will be skipped")
		return harness, nil, nil
	}

	factory := llm.NewProviderFactory(r.config, r.logger)

	model := r.config.DefaultModel()
	harness.Language = ai.NewSurface(session, factory, model, r.logger)
	harness.Agent = agent.New(session, factory, &r.config.Agent, r.logger)

	return harness, factory, nil
}
