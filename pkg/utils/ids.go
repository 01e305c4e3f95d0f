package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq uint64

// GenID generates a unique message ID from the current UTC nanosecond
// timestamp and an atomic sequence number. One local actor mutates at a
// time, so the window for collisions is negligible; the sequence covers
// bursts within the same nanosecond.
func GenID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("msg-%d-%d", n, s)
}

// GenThreadID generates a unique thread ID in the same format as GenID.
func GenThreadID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("thread-%d-%d", n, s)
}

// ClockLabel formats t the way the client renders message timestamps,
// e.g. "11:00AM".
func ClockLabel(t time.Time) string {
	return t.Format("3:04PM")
}

// TruncatePreview shortens s to width runes for thread-list previews,
// appending an ellipsis when content was cut.
func TruncatePreview(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "..."
}
