package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := GenID()
		if !strings.HasPrefix(id, "msg-") {
			t.Fatalf("unexpected id %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	if !strings.HasPrefix(GenThreadID(), "thread-") {
		t.Fatalf("unexpected thread id prefix")
	}
}

func TestClockLabel(t *testing.T) {
	at := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	if got := ClockLabel(at); got != "11:00AM" {
		t.Fatalf("ClockLabel = %q; want 11:00AM", got)
	}
	at = time.Date(2025, 6, 1, 15, 7, 0, 0, time.UTC)
	if got := ClockLabel(at); got != "3:07PM" {
		t.Fatalf("ClockLabel = %q; want 3:07PM", got)
	}
}

func TestTruncatePreview(t *testing.T) {
	if got := TruncatePreview("short", 20); got != "short" {
		t.Fatalf("short content must pass through; got %q", got)
	}
	if got := TruncatePreview("exactly twenty chars", 20); got != "exactly twenty chars" {
		t.Fatalf("boundary content must pass through; got %q", got)
	}
	if got := TruncatePreview("this one is definitely longer", 20); got != "this one is definite..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	// rune-aware, not byte-aware
	if got := TruncatePreview(strings.Repeat("日", 25), 20); got != strings.Repeat("日", 20)+"..." {
		t.Fatalf("unexpected multibyte truncation %q", got)
	}
}
