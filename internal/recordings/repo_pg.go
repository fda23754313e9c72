package recordings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo stores recordings in Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Recording) error {
	const q = `
		INSERT INTO recordings (id, file_name, mime_type, size_bytes, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, q,
		rec.ID, rec.FileName, rec.MimeType, rec.SizeBytes, rec.StorageKey, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert recording: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Recording, error) {
	const q = `
		SELECT id, file_name, mime_type, size_bytes, storage_key, created_at
		FROM recordings
		WHERE id = $1`
	var rec Recording
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.FileName, &rec.MimeType, &rec.SizeBytes, &rec.StorageKey, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, ErrNotFound
	}
	if err != nil {
		return Recording{}, fmt.Errorf("select recording: %w", err)
	}
	return rec, nil
}
