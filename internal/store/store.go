package store

import (
	"context"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// RunFilter specifies criteria for listing scan runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	SheetID string          `json:"sheet_id,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for scan run tracking.
type Store interface {
	CreateRun(ctx context.Context, sheetID, imagePath string, metadata map[string]string) (*model.ScanRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, summary *model.Summary, outputPath string) error
	FailRun(ctx context.Context, runID string, message string) error
	GetRun(ctx context.Context, runID string) (*model.ScanRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ScanRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
