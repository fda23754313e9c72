// Package object defines the blob storage abstraction for uploaded audio.
package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// SaveResult describes a stored object.
type SaveResult struct {
	Key       string
	SizeBytes int64
	MimeType  string
}

// Store persists and retrieves uploaded recordings.
type Store interface {
	// Save writes the reader contents under a key derived from fileName
	// and returns the storage metadata.
	Save(ctx context.Context, fileName, mimeType string, r io.Reader) (SaveResult, error)

	// Open returns a reader for the stored object. Callers must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Locator returns an external reference for the object (path or URI)
	// suitable for embedding in agent prompts.
	Locator(key string) string
}
