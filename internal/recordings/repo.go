package recordings

import (
	"context"
	"errors"
)

// ErrNotFound indicates the recording does not exist.
var ErrNotFound = errors.New("recording not found")

// Repo persists recording metadata.
type Repo interface {
	Create(ctx context.Context, rec Recording) error
	GetByID(ctx context.Context, id string) (Recording, error)
}
