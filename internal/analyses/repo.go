package analyses

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Repo persists analysis jobs.
type Repo interface {
	Create(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, id string) (Analysis, error)
	GetByRecordingID(ctx context.Context, recordingID string) (Analysis, error)

	// Complete stores the result and marks the job complete. The transition
	// is one-way; completing an already-complete job is an error.
	Complete(ctx context.Context, id string, result AnalysisResult, elapsedSeconds float64, completedAt time.Time) error
}
