package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/results"
	"github.com/ternarybob/specto/internal/runner"
	"github.com/ternarybob/specto/internal/scenarios"
)

// handleListScenarios implements the list_scenarios tool
func handleListScenarios(logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(formatCatalog(scenarios.Catalog())), nil
	}
}

// handleRunScenarios implements the run_scenarios tool
func handleRunScenarios(config *common.Config, store *results.RunStore, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// The runner mutates surface on a copy so concurrent tool calls
		// cannot observe each other's override.
		runConfig := *config
		if surface := request.GetString("surface", ""); surface != "" {
			runConfig.Runner.Surface = surface
		}

		list := scenarios.Catalog()
		if names := request.GetStringSlice("scenarios", nil); len(names) > 0 {
			list = nil
			for _, name := range names {
				scenario, ok := scenarios.ByName(name)
				if !ok {
					return textResult(fmt.Sprintf("Error: unknown scenario %q", name)), nil
				}
				list = append(list, scenario)
			}
		}

		run, err := runner.New(&runConfig, logger, store, nil).ExecuteScenarios(ctx, list)
		if err != nil {
			logger.Error().Err(err).Msg("Run failed")
			return textResult(fmt.Sprintf("Run error: %v", err)), nil
		}

		return textResult(results.BuildMarkdown(run)), nil
	}
}

// handleListRuns implements the list_runs tool
func handleListRuns(store *results.RunStore, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 10)
		if limit > 50 {
			limit = 50
		}

		runs, err := store.ListRuns(limit)
		if err != nil {
			logger.Error().Err(err).Msg("ListRuns failed")
			return textResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return textResult(formatRunList(runs)), nil
	}
}

// handleGetRunReport implements the get_run_report tool
func handleGetRunReport(store *results.RunStore, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runID, err := request.RequireString("run_id")
		if err != nil || runID == "" {
			return textResult("Error: run_id parameter is required"), nil
		}

		run, err := store.GetRun(runID)
		if err != nil {
			logger.Error().Err(err).Str("run_id", runID).Msg("GetRun failed")
			return textResult(fmt.Sprintf("Run not found: %v", err)), nil
		}

		return textResult(results.BuildMarkdown(run)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
