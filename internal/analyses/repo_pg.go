package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo stores analysis jobs in Postgres. Results are kept as JSONB.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	const q = `
		INSERT INTO analyses (id, recording_id, status, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, q, a.ID, a.RecordingID, a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	const q = `
		SELECT id, recording_id, status, result, processing_time_seconds, created_at, completed_at
		FROM analyses
		WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id))
}

func (r *PGRepo) GetByRecordingID(ctx context.Context, recordingID string) (Analysis, error) {
	const q = `
		SELECT id, recording_id, status, result, processing_time_seconds, created_at, completed_at
		FROM analyses
		WHERE recording_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, recordingID))
}

func (r *PGRepo) Complete(ctx context.Context, id string, result AnalysisResult, elapsedSeconds float64, completedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	const q = `
		UPDATE analyses
		SET status = $2, result = $3, processing_time_seconds = $4, completed_at = $5
		WHERE id = $1 AND status = $6`
	res, err := r.DB.ExecContext(ctx, q, id, StatusComplete, payload, elapsedSeconds, completedAt, StatusProcessing)
	if err != nil {
		return fmt.Errorf("complete analysis: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete analysis: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Analysis, error) {
	var (
		a           Analysis
		payload     []byte
		elapsed     sql.NullFloat64
		completedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.RecordingID, &a.Status, &payload, &elapsed, &a.CreatedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("select analysis: %w", err)
	}

	if len(payload) > 0 {
		var result AnalysisResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return Analysis{}, fmt.Errorf("decode result: %w", err)
		}
		a.Result = &result
	}
	if elapsed.Valid {
		a.ProcessingTimeSeconds = elapsed.Float64
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return a, nil
}
