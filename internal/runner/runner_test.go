package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/models"
	"github.com/ternarybob/specto/internal/scenarios"
)

type recordingNotifier struct {
	started  []string
	finished []models.ScenarioResult
	runs     []*models.RunRecord
}

func (n *recordingNotifier) ScenarioStarted(runID, name string) {
	n.started = append(n.started, name)
}

func (n *recordingNotifier) ScenarioFinished(runID string, result models.ScenarioResult) {
	n.finished = append(n.finished, result)
}

func (n *recordingNotifier) RunFinished(run *models.RunRecord) {
	n.runs = append(n.runs, run)
}

func newTestRunner(notifier Notifier) *Runner {
	config := common.NewDefaultConfig()
	config.Runner.Screenshot = false
	return New(config, arbor.NewLogger(), nil, notifier)
}

func TestRunScenarioPassed(t *testing.T) {
	notifier := &recordingNotifier{}
	r := newTestRunner(notifier)

	scenario := scenarios.Scenario{
		Name: "always_green",
		Path: "/green",
		Classic: func(ctx context.Context, h *scenarios.Harness) (string, error) {
			return "all good", nil
		},
	}

	result := r.runScenario(context.Background(), &scenarios.Harness{}, scenario, "run_x")

	assert.Equal(t, models.ScenarioStatusPassed, result.Status)
	assert.Equal(t, "all good", result.Result)
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{"always_green"}, notifier.started)
	require.Len(t, notifier.finished, 1)
}

func TestRunScenarioFailureIsIsolated(t *testing.T) {
	notifier := &recordingNotifier{}
	r := newTestRunner(notifier)

	scenario := scenarios.Scenario{
		Name: "always_red",
		Classic: func(ctx context.Context, h *scenarios.Harness) (string, error) {
			return "", errors.New("element not found")
		},
	}

	result := r.runScenario(context.Background(), &scenarios.Harness{}, scenario, "run_x")

	assert.Equal(t, models.ScenarioStatusFailed, result.Status)
	assert.Equal(t, "element not found", result.Error)
}

func TestRunScenarioEmptyResultFails(t *testing.T) {
	notifier := &recordingNotifier{}
	r := newTestRunner(notifier)

	scenario := scenarios.Scenario{
		Name: "silent",
		Classic: func(ctx context.Context, h *scenarios.Harness) (string, error) {
			return "  ", nil
		},
	}

	result := r.runScenario(context.Background(), &scenarios.Harness{}, scenario, "run_x")

	assert.Equal(t, models.ScenarioStatusFailed, result.Status)
	assert.Equal(t, "scenario produced an empty result", result.Error)
}

func TestRunScenarioSkipsMissingVariant(t *testing.T) {
	notifier := &recordingNotifier{}
	r := newTestRunner(notifier)
	r.config.Runner.Surface = "hybrid"

	scenario := scenarios.Scenario{
		Name: "classic_only",
		Classic: func(ctx context.Context, h *scenarios.Harness) (string, error) {
			return "classic", nil
		},
	}

	result := r.runScenario(context.Background(), &scenarios.Harness{}, scenario, "run_x")

	assert.Equal(t, models.ScenarioStatusSkipped, result.Status)
	// Skips are reported but never announced as started
	assert.Empty(t, notifier.started)
	assert.Len(t, notifier.finished, 1)
}

func TestRunScenarioSkipsWhenLanguageUnavailable(t *testing.T) {
	r := newTestRunner(nil)
	r.config.Runner.Surface = "ai"

	scenario := scenarios.Scenario{
		Name: "needs_llm",
		Language: func(ctx context.Context, h *scenarios.Harness) (string, error) {
			return "", scenarios.ErrLanguageUnavailable
		},
	}

	result := r.runScenario(context.Background(), &scenarios.Harness{}, scenario, "run_x")
	assert.Equal(t, models.ScenarioStatusSkipped, result.Status)
}
