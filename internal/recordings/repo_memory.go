package recordings

import (
	"context"
	"sync"
)

// MemoryRepo is a process-local Repo used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Recording
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]Recording{}}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Recording) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Recording, error) {
	if err := ctx.Err(); err != nil {
		return Recording{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return Recording{}, ErrNotFound
	}
	return rec, nil
}
