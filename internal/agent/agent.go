package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specto/internal/ai"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/interfaces"
	"github.com/ternarybob/specto/internal/models"
)

const plannerSystemPrompt = `You are an autonomous browser agent. You are given a goal, the current page state and the history of steps taken so far. Decide the single next step. Respond with a JSON object only, no prose, no code fence:
{"action":"navigate"|"click"|"fill"|"done"|"fail","selector":"<CSS selector, for click/fill>","value":"<text to type, for fill>","url":"<absolute URL, for navigate>","summary":"<one line describing the step, or the final outcome for done/fail>"}
Use "done" when the goal is achieved and "fail" when it cannot be.`

// Agent hands an entire multi-step goal to the inference provider and executes
// the planned steps one at a time until the provider reports done, fail, or
// the step budget runs out.
type Agent struct {
	browser   interfaces.BrowserSurface
	generator interfaces.ContentGenerator
	config    *common.AgentConfig
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.AgentRunner = (*Agent)(nil)

// New creates an agent over a browser session and a content generator
func New(browser interfaces.BrowserSurface, generator interfaces.ContentGenerator, config *common.AgentConfig, logger arbor.ILogger) *Agent {
	return &Agent{
		browser:   browser,
		generator: generator,
		config:    config,
		logger:    logger,
	}
}

// ExecuteTask runs the plan-act loop for one free-text goal
func (a *Agent) ExecuteTask(ctx context.Context, goal string) (*models.AgentResult, error) {
	a.logger.Info().Str("goal", goal).Msg("Agent task started")

	var history []string
	maxSteps := a.config.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 15
	}

	for step := 1; step <= maxSteps; step++ {
		decision, err := a.planStep(ctx, goal, history)
		if err != nil {
			return nil, fmt.Errorf("agent planning failed at step %d: %w", step, err)
		}

		a.logger.Debug().
			Int("step", step).
			Str("action", decision.Action).
			Str("summary", decision.Summary).
			Msg("Agent step")

		switch decision.Action {
		case "done":
			a.logger.Info().Int("steps", step).Msg("Agent task completed")
			return &models.AgentResult{
				Success: true,
				Message: decision.Summary,
				Steps:   step,
				Payload: map[string]any{"history": history},
			}, nil

		case "fail":
			a.logger.Warn().Int("steps", step).Str("reason", decision.Summary).Msg("Agent task failed")
			return &models.AgentResult{
				Success: false,
				Message: decision.Summary,
				Steps:   step,
				Payload: map[string]any{"history": history},
			}, nil
		}

		if err := a.executeStep(ctx, decision); err != nil {
			// Report the failure back to the planner instead of aborting;
			// the provider may choose a different element next round.
			history = append(history, fmt.Sprintf("step %d FAILED (%s): %v", step, decision.Summary, err))
			continue
		}
		history = append(history, fmt.Sprintf("step %d: %s", step, decision.Summary))
	}

	return &models.AgentResult{
		Success: false,
		Message: fmt.Sprintf("goal not reached within %d steps", maxSteps),
		Steps:   maxSteps,
		Payload: map[string]any{"history": history},
	}, nil
}

// planStep asks the provider for the next step
func (a *Agent) planStep(ctx context.Context, goal string, history []string) (*StepDecision, error) {
	html, err := a.browser.OuterHTML(ctx)
	if err != nil {
		return nil, err
	}
	url, err := a.browser.Location(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := ai.BuildSnapshot(url, html)
	if err != nil {
		return nil, err
	}

	var prompt strings.Builder
	prompt.WriteString("Goal: " + goal + "\n\n")
	if len(history) > 0 {
		prompt.WriteString("Steps so far:\n")
		for _, h := range history {
			prompt.WriteString("- " + h + "\n")
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString(snap.Describe())

	systemPrompt := plannerSystemPrompt
	if a.config.Instructions != "" {
		systemPrompt = a.config.Instructions + "\n\n" + plannerSystemPrompt
	}

	resp, err := a.generator.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             a.config.Model,
		SystemInstruction: systemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: prompt.String()},
		},
	})
	if err != nil {
		return nil, err
	}

	return ParseStepDecision(resp.Text)
}

// executeStep performs one planned step on the deterministic surface
func (a *Agent) executeStep(ctx context.Context, decision *StepDecision) error {
	switch decision.Action {
	case "navigate":
		return a.browser.Navigate(ctx, decision.URL)
	case "click":
		return a.browser.Click(ctx, decision.Selector)
	case "fill":
		return a.browser.Fill(ctx, decision.Selector, decision.Value)
	default:
		return fmt.Errorf("unsupported agent action %q", decision.Action)
	}
}
