package interfaces

import (
	"context"
	"time"
)

// BrowserSurface is the deterministic automation surface: selector-addressed
// browser commands with exact, reproducible semantics. All calls suspend until
// the underlying browser action completes or the context is cancelled.
//
// One BrowserSurface wraps one live browser tab. Scenarios share it
// sequentially and must not use it concurrently.
type BrowserSurface interface {
	// Navigate loads the given URL and waits for the document to be ready
	Navigate(ctx context.Context, url string) error

	// Fill types a literal value into the element matched by the CSS selector
	Fill(ctx context.Context, selector, value string) error

	// Click clicks the element matched by the CSS selector, waiting for it
	// to become visible first
	Click(ctx context.Context, selector string) error

	// Text returns the text content of the element matched by the CSS selector
	Text(ctx context.Context, selector string) (string, error)

	// SetFiles attaches local files to the file input matched by the selector
	SetFiles(ctx context.Context, selector string, files ...string) error

	// WaitVisible blocks until the element matched by the selector is visible
	WaitVisible(ctx context.Context, selector string) error

	// IsVisible reports whether the element matched by the selector is
	// currently visible, without waiting
	IsVisible(ctx context.Context, selector string) (bool, error)

	// ExpectDialog arms a one-shot watcher that accepts the next JavaScript
	// dialog. The returned wait function blocks until a dialog was accepted
	// or the timeout elapses, and returns the dialog message.
	ExpectDialog(ctx context.Context) func(timeout time.Duration) (string, error)

	// OuterHTML returns the serialized HTML of the current document
	OuterHTML(ctx context.Context) (string, error)

	// Location returns the current page URL
	Location(ctx context.Context) (string, error)

	// Screenshot captures the visible viewport as PNG bytes
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the browser session. Safe to call more than once.
	Close() error
}
