// Test runner: starts the local replica site, then executes the three UI
// suites (classic, ai, hybrid) as separate go test invocations and collects
// their logs under the output directory.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"

	"github.com/ternarybob/specto/internal/site"
)

type TestSuite struct {
	Name    string
	Surface string
	Command []string
}

type TestResult struct {
	Suite    string
	Success  bool
	Output   string
	Duration time.Duration
}

type TestRunnerConfig struct {
	TestRunner struct {
		TestsDir  string `toml:"tests_dir"`
		OutputDir string `toml:"output_dir"`
	} `toml:"test_runner"`
	TestServer struct {
		Port int `toml:"port"`
	} `toml:"test_server"`
}

// loadConfig loads the test runner configuration, falling back to defaults
// when no config file is present.
func loadConfig() (*TestRunnerConfig, error) {
	var config TestRunnerConfig

	configPath := "specto-test-runner.toml"
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.TestRunner.TestsDir == "" {
		config.TestRunner.TestsDir = "./test"
	}
	if config.TestRunner.OutputDir == "" {
		config.TestRunner.OutputDir = "./test/results"
	}
	if config.TestServer.Port == 0 {
		config.TestServer.Port = 3344
	}

	return &config, nil
}

func main() {
	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}

	config, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("tests_dir", config.TestRunner.TestsDir).
		Str("output_dir", config.TestRunner.OutputDir).
		Int("site_port", config.TestServer.Port).
		Msg("Test runner starting")

	// Start the replica site so the classic suite runs without internet access
	siteServer := site.StartServer(config.TestServer.Port)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		siteServer.Shutdown(ctx)
		log.Info().Msg("Site server stopped")
	}()

	siteURL := fmt.Sprintf("http://localhost:%d", config.TestServer.Port)
	if err := waitForSite(siteURL, 5*time.Second); err != nil {
		log.Fatal().Err(err).Msg("Site server did not become ready")
	}
	log.Info().Str("url", siteURL).Msg("Site server ready")

	uiTestPath := filepath.ToSlash(filepath.Join(config.TestRunner.TestsDir, "ui"))
	suites := []TestSuite{
		{
			Name:    "Classic UI Tests",
			Surface: "classic",
			Command: []string{"go", "test", "-v", "-run", "TestClassic", "./" + uiTestPath},
		},
		{
			Name:    "AI UI Tests",
			Surface: "ai",
			Command: []string{"go", "test", "-v", "-run", "TestAI", "./" + uiTestPath},
		},
		{
			Name:    "Hybrid UI Tests",
			Surface: "hybrid",
			Command: []string{"go", "test", "-v", "-run", "TestHybrid", "./" + uiTestPath},
		},
	}

	results := make([]TestResult, 0, len(suites))
	allPassed := true

	for _, suite := range suites {
		log.Info().Str("suite", suite.Name).Msg("Running suite")

		result := runTestSuite(suite, config.TestRunner.OutputDir, siteURL)
		results = append(results, result)

		if result.Success {
			log.Info().
				Str("suite", suite.Name).
				Float64("seconds", result.Duration.Seconds()).
				Msg("Suite passed")
		} else {
			log.Error().
				Str("suite", suite.Name).
				Float64("seconds", result.Duration.Seconds()).
				Msg("Suite failed")
			allPassed = false
		}
	}

	printSummary(results, allPassed)

	if !allPassed {
		os.Exit(1)
	}
}

// waitForSite polls the replica site status endpoint until ready
func waitForSite(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(250 * time.Millisecond)
	}

	return fmt.Errorf("site did not become ready within %v", timeout)
}

func runTestSuite(suite TestSuite, outputDir, siteURL string) TestResult {
	startTime := time.Now()
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	suiteDir := filepath.Join(outputDir, fmt.Sprintf("%s-%s", sanitizeFilename(suite.Name), timestamp))
	if err := os.MkdirAll(suiteDir, 0755); err != nil {
		log.Error().Err(err).Msg("Failed to create suite directory")
	}

	absSuiteDir, err := filepath.Abs(suiteDir)
	if err != nil {
		absSuiteDir = suiteDir
	}

	screenshotDir := filepath.Join(absSuiteDir, "screenshots")
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		log.Error().Err(err).Msg("Failed to create screenshots directory")
	}

	cmd := exec.Command(suite.Command[0], suite.Command[1:]...)
	cmd.Dir = "."
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("TEST_RESULTS_DIR=%s", absSuiteDir),
		fmt.Sprintf("SPECTO_TARGET_URL=%s", siteURL),
		fmt.Sprintf("SPECTO_RUNNER_SURFACE=%s", suite.Surface),
	)

	output, err := cmd.CombinedOutput()
	duration := time.Since(startTime)

	outputFile := filepath.Join(suiteDir, "test.log")
	os.WriteFile(outputFile, output, 0644)

	return TestResult{
		Suite:    suite.Name,
		Success:  err == nil,
		Output:   string(output),
		Duration: duration,
	}
}

func printSummary(results []TestResult, allPassed bool) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("TEST SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	totalDuration := time.Duration(0)
	passed := 0
	failed := 0

	for _, result := range results {
		status := "PASS"
		if !result.Success {
			status = "FAIL"
			failed++
		} else {
			passed++
		}
		fmt.Printf("%-30s %s (%.2fs)\n", result.Suite, status, result.Duration.Seconds())
		totalDuration += result.Duration
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Total: %d passed, %d failed (%.2fs)\n", passed, failed, totalDuration.Seconds())

	if allPassed {
		fmt.Println("\nALL TESTS PASSED")
	} else {
		fmt.Println("\nSOME TESTS FAILED")
	}
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
	)
	return strings.ToLower(replacer.Replace(name))
}
