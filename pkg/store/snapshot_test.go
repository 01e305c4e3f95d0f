package store

import (
	"errors"
	"reflect"
	"testing"

	"convstore/pkg/models"
)

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Threads: []models.Thread{
			{
				ID:   "thread-1",
				Name: "Ricky Smith",
				Kind: models.KindVendor,
				Messages: []models.Message{
					{
						ID:               "msg-1",
						Content:          "Hi!, How are You? \U0001F44B",
						Sender:           "Ricky Smith",
						Timestamp:        "11:00AM",
						FromCounterparty: true,
						Deleted:          models.DeletedForNone,
					},
				},
				PinnedMessageID: "msg-1",
			},
		},
		ActiveThread: "thread-1",
	}
}

func TestSnapshotRoundTripPebble(t *testing.T) {
	if err := Open(t.TempDir()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() {
		if err := Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	want := sampleSnapshot()
	s := NewSnapshotStore(PebbleKV{}, "")
	if !s.Probe() {
		t.Fatalf("probe against an open pebble should pass")
	}
	s.Save(want)
	if s.Degraded() {
		t.Fatalf("save against an open pebble should not degrade")
	}

	// a fresh adapter over the same database models a restart
	got, ok := NewSnapshotStore(PebbleKV{}, "").Load()
	if !ok {
		t.Fatalf("expected snapshot after reopen")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestProbeLeavesNoResidue(t *testing.T) {
	if err := Open(t.TempDir()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close()

	s := NewSnapshotStore(PebbleKV{}, "probe-test")
	if !s.Probe() {
		t.Fatalf("probe failed")
	}
	if _, err := (PebbleKV{}).Get("probe-test:probe"); err != ErrNotFound {
		t.Fatalf("probe key should be deleted; got err %v", err)
	}
}

type brokenKV struct {
	err error
}

func (b brokenKV) Set(string, []byte) error   { return b.err }
func (b brokenKV) Get(string) ([]byte, error) { return nil, b.err }
func (b brokenKV) Delete(string) error        { return b.err }

func TestSaveFallsBackOnPrimaryFailure(t *testing.T) {
	s := NewSnapshotStore(brokenKV{err: errors.New("disk full")}, "")
	var reason string
	s.OnDegrade = func(r string) { reason = r }

	s.Save(sampleSnapshot())
	if !s.Degraded() {
		t.Fatalf("expected degraded state")
	}
	if reason == "" {
		t.Fatalf("expected degrade callback to fire")
	}
	got, ok := s.Load()
	if !ok || len(got.Threads) != 1 {
		t.Fatalf("expected fallback copy to load; ok=%v", ok)
	}

	// once degraded the primary is not retried, and the callback fires once
	reason = ""
	s.Save(sampleSnapshot())
	if reason != "" {
		t.Fatalf("degrade callback should fire only on the first fallback")
	}
}

func TestProbeDegradesOnFailure(t *testing.T) {
	s := NewSnapshotStore(brokenKV{err: errors.New("read-only fs")}, "")
	if s.Probe() {
		t.Fatalf("probe against a broken primary should fail")
	}
	if !s.Degraded() {
		t.Fatalf("failed probe should mark the store degraded")
	}
}

func TestLoadRejectsCorruptPayloads(t *testing.T) {
	for _, payload := range []string{
		"not json at all",
		`{"chats": [{"id": ""}]}`,
		`{"chats": [{"id": "t1"}, {"id": "t1"}]}`,
		`{"chats": [{"id": "t1"}], "active_chat": "t2"}`,
		`{"chats": [{"id": "t1", "pinned_message_id": "ghost"}]}`,
	} {
		primary := NewMemoryKV()
		if err := primary.Set(DefaultSnapshotKey, []byte(payload)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		s := NewSnapshotStore(primary, "")
		if _, ok := s.Load(); ok {
			t.Fatalf("payload %q should be rejected", payload)
		}
	}
}

func TestLoadMissWhenEmpty(t *testing.T) {
	s := NewSnapshotStore(NewMemoryKV(), "")
	if _, ok := s.Load(); ok {
		t.Fatalf("expected miss on empty stores")
	}
}
