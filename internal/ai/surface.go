package ai

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specto/internal/interfaces"
)

const actSystemPrompt = `You are a browser automation assistant. You are given the current page state and one instruction describing a single UI action. Respond with a JSON object only, no prose, no code fence:
{"action":"click"|"fill"|"select"|"none","selector":"<CSS selector from the element inventory>","value":"<text to type, for fill/select only>","reason":"<short justification>"}
Pick selectors from the provided element inventory. Use "none" only when the instruction requires no action.`

const observeSystemPrompt = `You are a browser automation assistant. You are given the current page state and a yes/no question about it. Respond with a JSON object only, no prose, no code fence:
{"answer":true|false,"detail":"<the page text supporting the answer>"}`

const extractSystemPrompt = `You are a browser automation assistant. You are given the current page state and an instruction describing what text to extract from it. Respond with a JSON object only, no prose, no code fence:
{"text":"<the extracted text, empty string if absent>"}`

// Surface is the inference-backed automation surface. Each call snapshots the
// page, sends it with the instruction to the configured provider and, for Act,
// executes the resolved operation through the deterministic surface.
type Surface struct {
	browser   interfaces.BrowserSurface
	generator interfaces.ContentGenerator
	model     string
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.LanguageSurface = (*Surface)(nil)

// NewSurface creates a language surface over a browser session and a content
// generator. An empty model uses the generator's default provider.
func NewSurface(browser interfaces.BrowserSurface, generator interfaces.ContentGenerator, model string, logger arbor.ILogger) *Surface {
	return &Surface{
		browser:   browser,
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// snapshot captures the current page as prompt context
func (s *Surface) snapshot(ctx context.Context) (*PageSnapshot, error) {
	html, err := s.browser.OuterHTML(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.browser.Location(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(url, html)
}

// ask sends one snapshot-plus-instruction prompt to the provider
func (s *Surface) ask(ctx context.Context, systemPrompt, instruction string) (string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot page: %w", err)
	}

	resp, err := s.generator.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             s.model,
		SystemInstruction: systemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: snap.Describe() + "\n\nInstruction: " + instruction},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Act performs one UI action described in free text
func (s *Surface) Act(ctx context.Context, instruction string) error {
	s.logger.Debug().Str("instruction", instruction).Msg("Act")

	response, err := s.ask(ctx, actSystemPrompt, instruction)
	if err != nil {
		return fmt.Errorf("act %q: %w", instruction, err)
	}

	decision, err := ParseActionDecision(response)
	if err != nil {
		return fmt.Errorf("act %q: %w", instruction, err)
	}

	s.logger.Debug().
		Str("action", decision.Action).
		Str("selector", decision.Selector).
		Str("reason", decision.Reason).
		Msg("Provider resolved action")

	switch decision.Action {
	case "click":
		return s.browser.Click(ctx, decision.Selector)
	case "fill", "select":
		return s.browser.Fill(ctx, decision.Selector, decision.Value)
	case "none":
		return nil
	default:
		return fmt.Errorf("act %q: unsupported action %q", instruction, decision.Action)
	}
}

// Observe answers a yes/no question about the current page state
func (s *Surface) Observe(ctx context.Context, instruction string) (bool, string, error) {
	s.logger.Debug().Str("instruction", instruction).Msg("Observe")

	response, err := s.ask(ctx, observeSystemPrompt, instruction)
	if err != nil {
		return false, "", fmt.Errorf("observe %q: %w", instruction, err)
	}

	decision, err := ParseObserveDecision(response)
	if err != nil {
		return false, "", fmt.Errorf("observe %q: %w", instruction, err)
	}
	return decision.Answer, decision.Detail, nil
}

// Extract pulls a free-form text answer out of the current page
func (s *Surface) Extract(ctx context.Context, instruction string) (string, error) {
	s.logger.Debug().Str("instruction", instruction).Msg("Extract")

	response, err := s.ask(ctx, extractSystemPrompt, instruction)
	if err != nil {
		return "", fmt.Errorf("extract %q: %w", instruction, err)
	}

	decision, err := ParseExtractDecision(response)
	if err != nil {
		return "", fmt.Errorf("extract %q: %w", instruction, err)
	}
	return decision.Text, nil
}
