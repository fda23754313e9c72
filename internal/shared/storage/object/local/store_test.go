package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	saved, err := store.Save(context.Background(), "call.mp3", "audio/mpeg", strings.NewReader("audio bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.SizeBytes != int64(len("audio bytes")) {
		t.Fatalf("unexpected size: %d", saved.SizeBytes)
	}
	if !strings.HasSuffix(saved.Key, "_call.mp3") {
		t.Fatalf("expected key to end with sanitized file name, got %q", saved.Key)
	}

	rc, err := store.Open(context.Background(), saved.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := store.Save(context.Background(), "../escape.mp3", "audio/mpeg", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal file name to be rejected")
	}
}

func TestLocatorPointsIntoBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	loc := store.Locator("2026/08/23/key_call.mp3")
	if !strings.HasPrefix(loc, dir) {
		t.Fatalf("expected locator under %q, got %q", dir, loc)
	}
}
