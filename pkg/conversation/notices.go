package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice is a transient, auto-dismissing advisory surfaced to the
// presentation layer (persistence degradation, UX feedback). Notices are
// never errors; the operation that raised one still succeeded.
type Notice struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Expires time.Time `json:"expires"`
}

// NoticeQueue holds pending notices and drops them after their TTL.
type NoticeQueue struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending []Notice
}

// DefaultNoticeTTL mirrors the client's 3-second feedback toast.
const DefaultNoticeTTL = 3 * time.Second

func NewNoticeQueue(ttl time.Duration) *NoticeQueue {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeQueue{ttl: ttl, now: time.Now}
}

// Push queues a notice.
func (q *NoticeQueue) Push(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Notice{
		ID:      uuid.NewString(),
		Text:    text,
		Expires: q.now().Add(q.ttl),
	})
}

// Active returns the notices that have not yet expired and prunes the
// rest.
func (q *NoticeQueue) Active() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	kept := q.pending[:0]
	for _, n := range q.pending {
		if n.Expires.After(now) {
			kept = append(kept, n)
		}
	}
	q.pending = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
