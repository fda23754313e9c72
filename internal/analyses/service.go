package analyses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"callcenter-backend/internal/agent"
	"callcenter-backend/internal/recordings"
	"callcenter-backend/internal/shared/metrics"
	"callcenter-backend/internal/shared/storage/object"
	"callcenter-backend/internal/shared/telemetry"
)

// analysisTimeout bounds one agent invocation plus parsing.
const analysisTimeout = 2 * time.Minute

// completeTimeout bounds the completion write, independently of the
// invocation deadline.
const completeTimeout = 10 * time.Second

// Service creates analysis jobs and completes them in the background.
// Agent may be nil; every job then resolves to the mock result.
type Service struct {
	Repo  Repo
	Store object.Store
	Agent agent.Client

	// Timeout overrides the agent invocation deadline when positive.
	Timeout time.Duration
}

// Start creates a processing job for the recording and launches the
// background analysis. It satisfies recordings.AnalysisStarter.
func (s *Service) Start(ctx context.Context, rec recordings.Recording) (string, error) {
	a := Analysis{
		ID:          uuid.NewString(),
		RecordingID: rec.ID,
		Status:      StatusProcessing,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return "", fmt.Errorf("create analysis: %w", err)
	}
	metrics.IncAnalysesStarted()

	go s.run(a.ID, rec)
	return a.ID, nil
}

// Get returns a job by its id.
func (s *Service) Get(ctx context.Context, id string) (Analysis, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByRecording returns the job for a recording.
func (s *Service) GetByRecording(ctx context.Context, recordingID string) (Analysis, error) {
	return s.Repo.GetByRecordingID(ctx, recordingID)
}

// run executes one analysis to completion. It never lets a panic or error
// escape the goroutine; the worst outcome is a job left processing.
func (s *Service) run(analysisID string, rec recordings.Recording) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("analysis.panic", map[string]any{
				"analysis_id": analysisID,
				"error":       r,
			})
		}
	}()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = analysisTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result := s.analyze(ctx, rec)
	elapsed := time.Since(start).Seconds()

	// The invocation deadline may already be exhausted (hung upstream falls
	// back to the mock); the completion write gets its own context so the
	// job still transitions to complete.
	writeCtx, writeCancel := context.WithTimeout(context.Background(), completeTimeout)
	defer writeCancel()

	if err := s.Repo.Complete(writeCtx, analysisID, result, elapsed, time.Now().UTC()); err != nil {
		telemetry.Error("analysis.complete_failed", map[string]any{
			"analysis_id": analysisID,
			"error":       err.Error(),
		})
		return
	}

	metrics.IncAnalysesCompleted()
	metrics.ObserveAnalysisDuration(elapsed * 1000)
	telemetry.Info("analysis.complete", map[string]any{
		"analysis_id":     analysisID,
		"recording_id":    rec.ID,
		"elapsed_seconds": elapsed,
	})
}

// analyze invokes the agent and normalizes its reply. Unconfigured agent
// and invocation failures both resolve to the mock result.
func (s *Service) analyze(ctx context.Context, rec recordings.Recording) AnalysisResult {
	if s.Agent == nil {
		metrics.IncMockResponses()
		return Mock(rec.FileName)
	}

	prompt := agent.AnalysisPrompt(s.Store.Locator(rec.StorageKey))
	reply, err := s.Agent.Invoke(ctx, prompt)
	if err != nil {
		telemetry.Error("agent.invoke_failed", map[string]any{
			"recording_id": rec.ID,
			"error":        err.Error(),
		})
		metrics.IncAgentErrors()
		metrics.IncMockResponses()
		return Mock(rec.FileName)
	}

	return Normalize(reply)
}
