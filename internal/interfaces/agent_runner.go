package interfaces

import (
	"context"

	"github.com/ternarybob/specto/internal/models"
)

// AgentRunner accepts an entire multi-step goal expressed as free text and
// autonomously plans and executes it against the browser. The caller does not
// decompose the task; it receives a single structured result with a success
// flag and an arbitrary payload.
type AgentRunner interface {
	ExecuteTask(ctx context.Context, goal string) (*models.AgentResult, error)
}
