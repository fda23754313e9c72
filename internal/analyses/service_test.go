package analyses

import (
	"context"
	"testing"
	"time"

	"callcenter-backend/internal/agent"
	"callcenter-backend/internal/recordings"
	localstore "callcenter-backend/internal/shared/storage/object/local"
)

// blockingAgent waits out the invocation deadline before failing, the way a
// hung upstream does.
type blockingAgent struct{}

func (blockingAgent) Invoke(ctx context.Context, prompt string) (agent.Reply, error) {
	<-ctx.Done()
	return agent.Reply{}, ctx.Err()
}

func TestRunCompletesAfterInvocationDeadline(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	repo := NewMemoryRepo()
	svc := &Service{
		Repo:    repo,
		Store:   store,
		Agent:   blockingAgent{},
		Timeout: 20 * time.Millisecond,
	}

	rec := recordings.Recording{ID: "rec-1", FileName: "call.mp3", StorageKey: "2026/08/23/key_call.mp3"}
	analysisID, err := svc.Start(context.Background(), rec)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	a := waitForCompletion(t, repo, analysisID)
	if a.Status != StatusComplete {
		t.Fatalf("expected complete status, got %q", a.Status)
	}
	if a.Result == nil || a.Result.Intent != "service inquiry" {
		t.Fatalf("expected mock result after deadline, got %+v", a.Result)
	}
	if a.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
}
