package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/results"
	"github.com/ternarybob/specto/internal/site"
)

func main() {
	// Load configuration
	configPath := os.Getenv("SPECTO_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("specto.toml"); err == nil {
			configPath = "specto.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console logger to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	if config.Target.ServeSite {
		siteServer := site.StartServer(config.Target.SitePort)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			siteServer.Shutdown(ctx)
		}()
		config.Target.BaseURL = fmt.Sprintf("http://localhost:%d", config.Target.SitePort)
	}

	store, err := results.NewRunStore(&config.Storage.Badger, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open run store")
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"specto",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createListScenariosTool(), handleListScenarios(logger))
	mcpServer.AddTool(createRunScenariosTool(), handleRunScenarios(config, store, logger))
	mcpServer.AddTool(createListRunsTool(), handleListRuns(store, logger))
	mcpServer.AddTool(createGetRunReportTool(), handleGetRunReport(store, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
