package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/interfaces"
)

// Session wraps one headless Chrome tab behind the deterministic automation
// surface. It is acquired once per suite run and released once at the end;
// scenarios share it strictly sequentially.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	logger  arbor.ILogger
	config  *common.BrowserConfig

	closeOnce sync.Once
}

// Compile-time assertion
var _ interfaces.BrowserSurface = (*Session)(nil)

// NewSession launches a browser and opens a fresh tab. The caller owns the
// session and must call Close when the suite finishes.
func NewSession(config *common.BrowserConfig, logger arbor.ILogger) (*Session, error) {
	ctx, cancelTimeout := context.WithTimeout(context.Background(), config.SessionTimeout.Duration())

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(config.WindowWidth, config.WindowHeight),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc, cancelTimeout},
		logger:  logger,
		config:  config,
	}

	// Start the browser process now so session acquisition fails fast
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.Debug().
		Bool("headless", config.Headless).
		Int("width", config.WindowWidth).
		Int("height", config.WindowHeight).
		Msg("Browser session started")

	return s, nil
}

// Context returns the underlying chromedp context. UI tests use it for raw
// chromedp actions the surface does not wrap.
func (s *Session) Context() context.Context {
	return s.ctx
}

// actionCtx derives a per-action timeout from the caller context
func (s *Session) actionCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = s.ctx
	}
	return context.WithTimeout(ctx, s.config.ActionTimeout.Duration())
}

// Navigate loads the given URL and waits for the body to be ready
func (s *Session) Navigate(ctx context.Context, url string) error {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	if err := chromedp.Run(s.runCtx(actx),
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	s.logger.Debug().Str("url", url).Msg("Navigated")
	return nil
}

// Fill types a literal value into the element matched by the selector
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	if err := chromedp.Run(s.runCtx(actx),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Click clicks the element matched by the selector
func (s *Session) Click(ctx context.Context, selector string) error {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	if err := chromedp.Run(s.runCtx(actx),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// Text returns the text content of the element matched by the selector
func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	var text string
	if err := chromedp.Run(s.runCtx(actx),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Text(selector, &text, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return text, nil
}

// SetFiles attaches local files to the file input matched by the selector.
// Relative paths are resolved against the working directory because Chrome
// requires absolute upload paths.
func (s *Session) SetFiles(ctx context.Context, selector string, files ...string) error {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	absFiles := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve upload file %s: %w", f, err)
		}
		absFiles = append(absFiles, abs)
	}

	if err := chromedp.Run(s.runCtx(actx),
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.SetUploadFiles(selector, absFiles, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to set files on %s: %w", selector, err)
	}
	return nil
}

// WaitVisible blocks until the element matched by the selector is visible
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	if err := chromedp.Run(s.runCtx(actx),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("element %s did not become visible: %w", selector, err)
	}
	return nil
}

// IsVisible reports whether the selector matches a currently visible element
func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	var visible bool
	script := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!(el && el.offsetWidth > 0 && el.offsetHeight > 0); })()`,
		selector)
	if err := chromedp.Run(s.runCtx(actx), chromedp.Evaluate(script, &visible)); err != nil {
		return false, fmt.Errorf("visibility check for %s failed: %w", selector, err)
	}
	return visible, nil
}

// ExpectDialog arms a one-shot watcher that accepts the next JavaScript dialog
func (s *Session) ExpectDialog(ctx context.Context) func(timeout time.Duration) (string, error) {
	messages := make(chan string, 1)
	listenCtx, cancelListen := context.WithCancel(s.ctx)

	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		if dlg, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			select {
			case messages <- dlg.Message:
			default:
			}
			// Accept on a separate goroutine; the listener must not block
			go func() {
				if err := chromedp.Run(s.ctx, page.HandleJavaScriptDialog(true)); err != nil {
					s.logger.Warn().Err(err).Msg("Failed to accept dialog")
				}
			}()
		}
	})

	return func(timeout time.Duration) (string, error) {
		defer cancelListen()
		select {
		case msg := <-messages:
			s.logger.Debug().Str("message", msg).Msg("Dialog accepted")
			return msg, nil
		case <-time.After(timeout):
			return "", fmt.Errorf("no dialog appeared within %v", timeout)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// OuterHTML returns the serialized HTML of the current document
func (s *Session) OuterHTML(ctx context.Context) (string, error) {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(s.runCtx(actx),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("failed to capture page HTML: %w", err)
	}
	return html, nil
}

// Location returns the current page URL
func (s *Session) Location(ctx context.Context) (string, error) {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	var url string
	if err := chromedp.Run(s.runCtx(actx), chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return url, nil
}

// Screenshot captures the visible viewport as PNG bytes
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	actx, cancel := s.actionCtx(ctx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(s.runCtx(actx), chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

// Close releases the browser session. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil {
			s.logger.Debug().Err(err).Msg("Browser cancel returned")
		}
		for _, cancel := range s.cancels {
			cancel()
		}
		s.logger.Debug().Msg("Browser session closed")
	})
	return nil
}

// runCtx picks the chromedp target context while honouring the caller's
// deadline. chromedp actions must run against the browser context, so the
// derived deadline is watched alongside it.
func (s *Session) runCtx(deadline context.Context) context.Context {
	runCtx, cancel := context.WithCancel(s.ctx)
	go func() {
		select {
		case <-deadline.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()
	return runCtx
}
