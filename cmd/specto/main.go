package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/results"
	"github.com/ternarybob/specto/internal/runner"
	"github.com/ternarybob/specto/internal/server"
	"github.com/ternarybob/specto/internal/site"
)

var (
	configFile   = flag.String("config", "", "Configuration file path")
	configFileC  = flag.String("c", "", "Configuration file path (shorthand)")
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	surface      = flag.String("surface", "", "Automation surface: classic, ai or hybrid (overrides config)")
	targetURL    = flag.String("target", "", "Target site base URL (overrides config)")
	serveMode    = flag.Bool("serve", false, "Keep running: expose the API and run on the configured schedule")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Specto version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Merge shorthand flags
	finalConfig := *configFile
	if *configFileC != "" {
		finalConfig = *configFileC
	}
	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Auto-discover config file if not specified
	if finalConfig == "" {
		if _, err := os.Stat("specto.toml"); err == nil {
			finalConfig = "specto.toml"
		} else if _, err := os.Stat("deployments/local/specto.toml"); err == nil {
			finalConfig = "deployments/local/specto.toml"
		}
	}

	config, err := common.LoadFromFile(finalConfig)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Str("path", finalConfig).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// CLI flag overrides (highest priority)
	if finalPort != 0 {
		config.Server.Port = finalPort
	}
	if *surface != "" {
		config.Runner.Surface = *surface
	}
	if *targetURL != "" {
		config.Target.BaseURL = *targetURL
		config.Target.ServeSite = false
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Str("config_file", finalConfig).
		Str("surface", config.Runner.Surface).
		Str("target", config.Target.BaseURL).
		Msg("Configuration loaded")

	if config.Target.ServeSite {
		siteServer := site.StartServer(config.Target.SitePort)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			siteServer.Shutdown(ctx)
		}()
		config.Target.BaseURL = fmt.Sprintf("http://localhost:%d", config.Target.SitePort)
		logger.Info().Str("url", config.Target.BaseURL).Msg("Serving bundled replica site")
	}

	store, err := results.NewRunStore(&config.Storage.Badger, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open run store")
		os.Exit(1)
	}
	defer store.Close()

	reporter := results.NewReportWriter(config.Runner.ResultsDir, logger)

	if *serveMode || config.Runner.Schedule != "" {
		serve(config, logger, store, reporter)
		return
	}

	// One-shot mode: execute the catalog once, write the report and exit.
	// Scenario failures are reported in the summary, not via the exit code.
	run, err := runner.New(config, logger, store, nil).Execute(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Run failed to execute")
		os.Exit(1)
	}

	mdPath, pdfPath, err := reporter.WriteReport(run)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to write run report")
	} else {
		logger.Info().Str("markdown", mdPath).Str("pdf", pdfPath).Msg("Report written")
	}

	passed, failed, skipped := run.Counts()
	fmt.Printf("\nRun %s (%s): %d passed, %d failed, %d skipped in %s\n",
		run.ID, run.Surface, passed, failed, skipped, run.Duration.Round(time.Millisecond))
}

// serve keeps the process alive with the HTTP API, websocket progress stream
// and, when configured, cron-scheduled runs.
func serve(config *common.Config, logger arbor.ILogger, store *results.RunStore, reporter *results.ReportWriter) {
	hub := server.NewProgressHub(logger)
	engine := runner.New(config, logger, store, hub)

	execute := func(ctx context.Context) error {
		run, err := engine.Execute(ctx)
		if err != nil {
			return err
		}
		if _, _, err := reporter.WriteReport(run); err != nil {
			logger.Error().Err(err).Msg("Failed to write run report")
		}
		return nil
	}

	var scheduler *cron.Cron
	if config.Runner.Schedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(config.Runner.Schedule, func() {
			logger.Info().Str("schedule", config.Runner.Schedule).Msg("Scheduled run starting")
			if err := execute(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Scheduled run failed")
			}
		})
		if err != nil {
			logger.Fatal().Err(err).Str("schedule", config.Runner.Schedule).Msg("Invalid run schedule")
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info().Str("schedule", config.Runner.Schedule).Msg("Run scheduler started")
	}

	srv := server.New(config, logger, store, hub, execute)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
			os.Exit(1)
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("Interrupt signal received")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
