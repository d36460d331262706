package interfaces

import (
	"github.com/ternarybob/specto/internal/models"
)

// RunStorage persists scenario run history
type RunStorage interface {
	// SaveRun stores a completed run record
	SaveRun(run *models.RunRecord) error

	// GetRun retrieves a run by its ID
	GetRun(runID string) (*models.RunRecord, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]*models.RunRecord, error)

	// Close releases the underlying store
	Close() error
}
