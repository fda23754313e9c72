// Package local stores uploaded recordings on the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"callcenter-backend/internal/shared/storage/object"
	"callcenter-backend/internal/shared/util"
)

// Store writes objects under a base directory.
type Store struct {
	baseDir string
}

// New creates the base directory if needed.
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, errors.New("local store: base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("local store: create base dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) Save(ctx context.Context, fileName, mimeType string, r io.Reader) (object.SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return object.SaveResult{}, err
	}

	key, err := buildKey(fileName)
	if err != nil {
		return object.SaveResult{}, err
	}
	dst := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return object.SaveResult{}, fmt.Errorf("local store: create dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return object.SaveResult{}, fmt.Errorf("local store: create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(dst)
		return object.SaveResult{}, fmt.Errorf("local store: write file: %w", err)
	}

	return object.SaveResult{Key: key, SizeBytes: n, MimeType: mimeType}, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("local store: open: %w", err)
	}
	return f, nil
}

func (s *Store) Locator(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func buildKey(fileName string) (string, error) {
	safe, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("local store: %w", err)
	}
	date := time.Now().UTC().Format("2006/01/02")
	return fmt.Sprintf("%s/%s_%s", date, uuid.NewString(), safe), nil
}
