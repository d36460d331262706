package interfaces

import (
	"context"
)

// LanguageSurface is the natural-language automation surface: each call sends
// an instruction plus the current page context to an external inference
// provider, which resolves intent to a concrete UI operation or answer.
// Results are non-deterministic and not reproducible bit-for-bit.
type LanguageSurface interface {
	// Act performs one UI action described in free text, e.g.
	// "click the button labelled Submit"
	Act(ctx context.Context, instruction string) error

	// Observe answers a yes/no question about the current page state and
	// returns the provider's supporting detail text
	Observe(ctx context.Context, instruction string) (bool, string, error)

	// Extract pulls a free-form text answer out of the current page, e.g.
	// "extract the confirmation message shown after submitting the form"
	Extract(ctx context.Context, instruction string) (string, error)
}
