package recordings

import "time"

// Recording is one uploaded call audio file.
type Recording struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
