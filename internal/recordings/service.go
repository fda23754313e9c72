package recordings

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"callcenter-backend/internal/shared/storage/object"
)

// Service stores an uploaded audio file and its metadata record.
type Service struct {
	Store object.Store
	Repo  Repo
}

// Upload writes the file to object storage and records it.
func (s *Service) Upload(ctx context.Context, fileName, mimeType string, r io.Reader) (Recording, error) {
	saved, err := s.Store.Save(ctx, fileName, mimeType, r)
	if err != nil {
		return Recording{}, fmt.Errorf("store upload: %w", err)
	}

	rec := Recording{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   saved.MimeType,
		SizeBytes:  saved.SizeBytes,
		StorageKey: saved.Key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Recording{}, fmt.Errorf("save recording: %w", err)
	}
	return rec, nil
}

// Get returns a stored recording.
func (s *Service) Get(ctx context.Context, id string) (Recording, error) {
	return s.Repo.GetByID(ctx, id)
}
