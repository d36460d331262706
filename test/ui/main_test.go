package ui

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestMain verifies the target site is reachable before running any UI
// tests. When SPECTO_TARGET_URL is unset the individual tests skip
// themselves, so the check is informational only.
func TestMain(m *testing.M) {
	if url := os.Getenv("SPECTO_TARGET_URL"); url != "" {
		if err := verifyTargetReachable(url); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: target site not reachable: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Target site reachable: %s\n", url)
		}
	}

	os.Exit(m.Run())
}

func verifyTargetReachable(url string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("target returned status %d", resp.StatusCode)
	}
	return nil
}
