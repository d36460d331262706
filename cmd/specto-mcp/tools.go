package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createListScenariosTool returns the list_scenarios tool definition
func createListScenariosTool() mcp.Tool {
	return mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the scenario catalog with the surfaces each scenario supports"),
	)
}

// createRunScenariosTool returns the run_scenarios tool definition
func createRunScenariosTool() mcp.Tool {
	return mcp.NewTool("run_scenarios",
		mcp.WithDescription("Execute scenarios against the configured target site and return the results"),
		mcp.WithString("surface",
			mcp.Description("Automation surface: classic, ai or hybrid (default: configured surface)"),
		),
		mcp.WithArray("scenarios",
			mcp.WithStringItems(),
			mcp.Description("Scenario names to run (default: the whole catalog)"),
		),
	)
}

// createListRunsTool returns the list_runs tool definition
func createListRunsTool() mcp.Tool {
	return mcp.NewTool("list_runs",
		mcp.WithDescription("List recent runs with pass/fail counts"),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 50)"),
		),
	)
}

// createGetRunReportTool returns the get_run_report tool definition
func createGetRunReportTool() mcp.Tool {
	return mcp.NewTool("get_run_report",
		mcp.WithDescription("Retrieve the full markdown report for a run"),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID (format: run_{uuid})"),
		),
	)
}
