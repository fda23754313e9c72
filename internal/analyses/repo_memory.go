package analyses

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryRepo is a process-local Repo used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Analysis{}}
}

func (r *MemoryRepo) Create(ctx context.Context, a Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) GetByRecordingID(ctx context.Context, recordingID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.RecordingID == recordingID {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}

func (r *MemoryRepo) Complete(ctx context.Context, id string, result AnalysisResult, elapsedSeconds float64, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	if a.Status == StatusComplete {
		return errors.New("analysis already complete")
	}
	a.Status = StatusComplete
	a.Result = &result
	a.ProcessingTimeSeconds = elapsedSeconds
	a.CompletedAt = &completedAt
	r.items[id] = a
	return nil
}
