package scenarios

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/specto/internal/interfaces"
)

// Func executes one scenario variant against the harness and returns the
// probed result value. The result must be non-empty for the scenario to pass.
type Func func(ctx context.Context, h *Harness) (string, error)

// Scenario is one fixed navigate-act-assert sequence targeting one UI feature
// of the demo site, in up to three mechanical variants. A nil variant means
// the scenario cannot run on that surface and is skipped.
type Scenario struct {
	Name string
	Path string // fixed site path the scenario navigates to

	Classic  Func // deterministic selector-addressed commands
	Language Func // natural-language instructions resolved by inference
	Hybrid   Func // deterministic actions with inference-backed verification
}

// Variant selects one of a scenario's implementations by surface name
func (s Scenario) Variant(surface string) Func {
	switch surface {
	case "ai":
		return s.Language
	case "hybrid":
		return s.Hybrid
	default:
		return s.Classic
	}
}

// Harness carries the explicit session handles a scenario runs against.
// Language and Agent are nil when no inference credential is configured;
// variants that need them fail with ErrLanguageUnavailable.
type Harness struct {
	Browser  interfaces.BrowserSurface
	Language interfaces.LanguageSurface
	Agent    interfaces.AgentRunner

	BaseURL    string
	UploadFile string
	DialogWait time.Duration
}

// ErrLanguageUnavailable is returned by variants that need the inference
// surfaces when no credential is configured
var ErrLanguageUnavailable = fmt.Errorf("natural-language surface unavailable: no inference credential configured")

// URL joins the harness base URL with a site path
func (h *Harness) URL(path string) string {
	return strings.TrimSuffix(h.BaseURL, "/") + path
}

// language returns the language surface or ErrLanguageUnavailable
func (h *Harness) language() (interfaces.LanguageSurface, error) {
	if h.Language == nil {
		return nil, ErrLanguageUnavailable
	}
	return h.Language, nil
}

// dialogWait falls back to one second, the fixed wait used for dialog handling
func (h *Harness) dialogWait() time.Duration {
	if h.DialogWait > 0 {
		return h.DialogWait
	}
	return time.Second
}
