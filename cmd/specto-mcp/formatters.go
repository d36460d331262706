package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/specto/internal/models"
	"github.com/ternarybob/specto/internal/scenarios"
)

// formatCatalog renders the scenario catalog as markdown
func formatCatalog(list []scenarios.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scenario Catalog (%d scenarios)\n\n", len(list))

	for _, s := range list {
		var surfaces []string
		if s.Classic != nil {
			surfaces = append(surfaces, "classic")
		}
		if s.Language != nil {
			surfaces = append(surfaces, "ai")
		}
		if s.Hybrid != nil {
			surfaces = append(surfaces, "hybrid")
		}
		fmt.Fprintf(&b, "- **%s** (`%s`) - surfaces: %s\n", s.Name, s.Path, strings.Join(surfaces, ", "))
	}

	return b.String()
}

// formatRunList renders run summaries as markdown
func formatRunList(runs []*models.RunRecord) string {
	if len(runs) == 0 {
		return "No runs recorded yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Recent Runs (%d)\n\n", len(runs))

	for _, run := range runs {
		passed, failed, skipped := run.Counts()
		fmt.Fprintf(&b, "- **%s** - %s on %s at %s: %d passed, %d failed, %d skipped (%s)\n",
			run.ID, run.Surface, run.TargetURL,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			passed, failed, skipped,
			run.Duration.Round(time.Millisecond))
	}

	return b.String()
}
