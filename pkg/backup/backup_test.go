package backup

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"convstore/pkg/conversation"
	"convstore/pkg/models"
	"convstore/pkg/store"
)

func newConv(t *testing.T) *conversation.Store {
	t.Helper()
	return conversation.New(store.NewSnapshotStore(store.NewMemoryKV(), ""), conversation.Options{})
}

func TestRunOnceWritesSnapshot(t *testing.T) {
	conv := newConv(t)
	dir := t.TempDir()

	name, err := RunOnce(conv, dir)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("export not valid json: %v", err)
	}
	if err := snap.Validate(); err != nil {
		t.Fatalf("export fails validation: %v", err)
	}
	if len(snap.Threads) != 1 {
		t.Fatalf("expected seeded thread in export; got %d", len(snap.Threads))
	}

	// no tmp residue
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one export file; got %d", len(entries))
	}
}

func TestStartDisabled(t *testing.T) {
	cancel, err := Start(context.Background(), newConv(t), "", "", false)
	if err != nil {
		t.Fatalf("disabled Start must not fail: %v", err)
	}
	cancel()
}

func TestStartRejectsBadCron(t *testing.T) {
	if _, err := Start(context.Background(), newConv(t), t.TempDir(), "not a cron", true); err == nil {
		t.Fatalf("expected invalid cron error")
	}
}

func TestStartDefaultsCron(t *testing.T) {
	cancel, err := Start(context.Background(), newConv(t), t.TempDir(), "", true)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
}
