package analyses

import "time"

// Job statuses. A job transitions once, from processing to complete.
const (
	StatusProcessing = "processing"
	StatusComplete   = "complete"
)

// Analysis is one unit of call-analysis work tied to a recording.
type Analysis struct {
	ID                    string
	RecordingID           string
	Status                string
	Result                *AnalysisResult
	ProcessingTimeSeconds float64
	CreatedAt             time.Time
	CompletedAt           *time.Time
}
