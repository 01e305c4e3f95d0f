package models

import "testing"

func TestCloneIsDeep(t *testing.T) {
	orig := &Snapshot{
		Threads: []Thread{
			{
				ID: "t1",
				Messages: []Message{
					{
						ID:        "m1",
						Content:   "hello",
						Files:     []Attachment{{Kind: AttachmentImage, Name: "a.png"}},
						Reactions: map[string][]string{"👍": {"actor-1"}},
					},
				},
			},
		},
		ActiveThread: "t1",
	}

	clone := orig.Clone()
	m := clone.FindThread("t1").FindMessage("m1")
	m.Content = "changed"
	m.Files[0].Name = "b.png"
	m.Reactions["👍"] = append(m.Reactions["👍"], "actor-2")

	got := orig.Threads[0].Messages[0]
	if got.Content != "hello" || got.Files[0].Name != "a.png" || len(got.Reactions["👍"]) != 1 {
		t.Fatalf("clone shares storage with the original: %+v", got)
	}
}

func TestPinnedMessageResolution(t *testing.T) {
	th := Thread{
		ID: "t1",
		Messages: []Message{
			{ID: "m1", Content: "keep"},
			{ID: "m2", Content: "gone", Deleted: DeletedForEveryone},
		},
	}

	if th.PinnedMessage() != nil {
		t.Fatalf("no pin set, expected nil")
	}
	th.PinnedMessageID = "ghost"
	if th.PinnedMessage() != nil {
		t.Fatalf("dangling pin must resolve to nil")
	}
	th.PinnedMessageID = "m2"
	if th.PinnedMessage() != nil {
		t.Fatalf("pin on a deleted-for-everyone message must resolve to nil")
	}
	th.PinnedMessageID = "m1"
	if m := th.PinnedMessage(); m == nil || m.ID != "m1" {
		t.Fatalf("expected m1 resolved; got %+v", m)
	}
}

func TestDeletionStateValid(t *testing.T) {
	for _, ok := range []DeletionState{"", DeletedForNone, DeletedForMe, DeletedForEveryone} {
		if !ok.Valid() {
			t.Fatalf("%q should be valid", ok)
		}
	}
	if DeletionState("later").Valid() {
		t.Fatalf("unknown state accepted")
	}
}
