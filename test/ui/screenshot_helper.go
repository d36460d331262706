package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ternarybob/specto/internal/interfaces"
)

var (
	testRunDir     string
	testRunDirOnce sync.Once
)

// getOrCreateTestRunDir returns the test run directory, creating it if necessary.
// All screenshots from a single test run go to the same directory.
func getOrCreateTestRunDir() (string, error) {
	var err error
	testRunDirOnce.Do(func() {
		// Check if TEST_RESULTS_DIR is set by runner
		if envDir := os.Getenv("TEST_RESULTS_DIR"); envDir != "" {
			testRunDir = envDir
			return
		}

		timestamp := time.Now().Format("run-2006-01-02-15-04-05")
		resultsBase := filepath.Join("..", "results")
		if _, statErr := os.Stat("results"); statErr == nil {
			resultsBase = "results"
		}

		testRunDir = filepath.Join(resultsBase, timestamp)
		err = os.MkdirAll(testRunDir, 0755)
	})

	if err != nil {
		return "", fmt.Errorf("failed to create test run directory: %w", err)
	}
	return testRunDir, nil
}

// TakeScreenshot captures a screenshot through the browser surface and saves
// it under {run-dir}/screenshots/.
func TakeScreenshot(ctx context.Context, browser interfaces.BrowserSurface, name string) error {
	runDir, err := getOrCreateTestRunDir()
	if err != nil {
		return err
	}

	screenshotDir := filepath.Join(runDir, "screenshots")
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	buf, err := browser.Screenshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(screenshotDir, fmt.Sprintf("%s-%s.png", name, timestamp))
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}

	return nil
}
