package conversation

import (
	"sync"
	"time"

	"convstore/pkg/logger"
	"convstore/pkg/models"
	"convstore/pkg/store"
	"convstore/pkg/utils"
)

// DeleteScope selects how far a message deletion reaches.
type DeleteScope string

const (
	DeleteForMe       DeleteScope = "me"
	DeleteForEveryone DeleteScope = "everyone"
)

// previewWidth is the number of runes of message content shown in thread
// list previews.
const previewWidth = 20

// Timestamped carries the display labels derived from one clock reading.
type Timestamped struct {
	Clock    string // "11:00AM"
	Relative string // "Just now"
}

// Options tunes a Store. Zero values select the client's defaults.
type Options struct {
	// SelfLabel is the sender label attached to locally authored
	// messages.
	SelfLabel string
	// PreviewWidth overrides the thread-list preview truncation width.
	PreviewWidth int
	// NoticeTTL overrides how long advisory notices stay visible.
	NoticeTTL time.Duration
	// Seed overrides the default first-run conversation.
	Seed *Seed
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Store owns the conversation snapshot and is the single entry point for
// every mutation and query. Each mutation runs atomically: the snapshot is
// cloned, changed, persisted, and only then published; callers never see
// a partially applied or unsaved snapshot. Lookup misses are silent
// no-ops; identifiers are internally generated, so a miss means a stale
// caller reference, not an error.
type Store struct {
	mu      sync.Mutex
	snap    *models.Snapshot
	adapter *store.SnapshotStore
	notices *NoticeQueue

	self         string
	previewWidth int
	seed         Seed
	clock        func() time.Time
}

// New builds a Store over the given persistence adapter and loads the most
// recent snapshot. When no valid snapshot exists (first run, corrupt data,
// adapter unavailable) the default seed is installed and persisted. New
// never fails: persistence trouble degrades to in-memory operation and
// surfaces as a notice.
func New(adapter *store.SnapshotStore, opts Options) *Store {
	s := &Store{
		adapter:      adapter,
		notices:      NewNoticeQueue(opts.NoticeTTL),
		self:         opts.SelfLabel,
		previewWidth: opts.PreviewWidth,
		seed:         DefaultSeed(),
		clock:        opts.Clock,
	}
	if s.self == "" {
		s.self = "You"
	}
	if s.previewWidth <= 0 {
		s.previewWidth = previewWidth
	}
	if opts.Seed != nil {
		s.seed = *opts.Seed
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	adapter.OnDegrade = func(reason string) {
		s.notices.Push("Unable to save data durably. Your changes may not persist across sessions.")
		logger.Warn("persistence_degraded", "reason", reason)
	}

	if snap, ok := adapter.Load(); ok {
		s.snap = snap
		logger.Info("snapshot_loaded", "threads", len(snap.Threads))
		return s
	}
	s.snap = seedSnapshot(s.seed, s.labelNow)
	adapter.Save(s.snap)
	logger.Info("snapshot_seeded", "thread", s.snap.ActiveThread)
	return s
}

// Notices exposes the transient notice queue for the presentation layer.
func (s *Store) Notices() *NoticeQueue { return s.notices }

func (s *Store) labelNow() Timestamped {
	now := s.clock()
	return Timestamped{Clock: utils.ClockLabel(now), Relative: "Just now"}
}

// mutate clones the snapshot, applies fn, and on success persists and
// publishes the new value in one step. fn returning false means a silent
// no-op: nothing is saved or published.
func (s *Store) mutate(op string, fn func(snap *models.Snapshot) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Clone()
	if !fn(next) {
		mutationMisses.WithLabelValues(op).Inc()
		return false
	}
	s.adapter.Save(next)
	s.snap = next
	mutations.WithLabelValues(op).Inc()
	return true
}

// SelectThread sets the active thread pointer and reports whether it was
// applied. Unknown ids are ignored; callers must treat an unresolved
// active thread as "no thread selected".
func (s *Store) SelectThread(threadID string) bool {
	return s.mutate("select_thread", func(snap *models.Snapshot) bool {
		if snap.FindThread(threadID) == nil {
			return false
		}
		snap.ActiveThread = threadID
		return true
	})
}

// SendMessage appends a locally authored message to the named thread and
// refreshes the thread's preview and activity label. replyTo may name an
// existing message in the same thread; attachments may be nil. The new
// message's id is returned, or "" when the thread does not exist.
func (s *Store) SendMessage(threadID, text string, attachments []models.Attachment, replyTo string) string {
	var id string
	s.mutate("send_message", func(snap *models.Snapshot) bool {
		th := snap.FindThread(threadID)
		if th == nil {
			logger.Debug("send_unknown_thread", "thread", threadID)
			return false
		}
		now := s.labelNow()
		msg := models.Message{
			ID:        utils.GenID(),
			Content:   text,
			Sender:    s.self,
			Timestamp: now.Clock,
			Files:     attachments,
			ReplyTo:   replyTo,
			Deleted:   models.DeletedForNone,
		}
		s.appendMessage(th, msg, now)
		id = msg.ID
		logger.Info("message_sent", "thread", threadID, "id", msg.ID, "reply_to", replyTo)
		return true
	})
	return id
}

func (s *Store) appendMessage(th *models.Thread, msg models.Message, now Timestamped) {
	th.Messages = append(th.Messages, msg)
	th.LastMessage = s.self + ": " + utils.TruncatePreview(msg.Content, s.previewWidth)
	th.Timestamp = now.Relative
}

// EditMessage replaces the content of an existing message, marks it edited
// and refreshes its timestamp label. Messages hidden for everyone are
// tombstones and stay untouched.
func (s *Store) EditMessage(threadID, messageID, newText string) bool {
	return s.mutate("edit_message", func(snap *models.Snapshot) bool {
		th := snap.FindThread(threadID)
		if th == nil {
			return false
		}
		m := th.FindMessage(messageID)
		if m == nil || m.DeletedForAll() {
			return false
		}
		m.Content = newText
		m.Edited = true
		m.Timestamp = s.labelNow().Clock
		logger.Info("message_edited", "thread", threadID, "id", messageID)
		return true
	})
}

// DeleteMessage advances the message's deletion state. Hidden-for-everyone
// is absorbing; hidden-for-self may still escalate to everyone, but no
// transition leads back. Deleting the thread's pinned message clears the
// pin.
func (s *Store) DeleteMessage(threadID, messageID string, scope DeleteScope) bool {
	return s.mutate("delete_message", func(snap *models.Snapshot) bool {
		th := snap.FindThread(threadID)
		if th == nil {
			return false
		}
		m := th.FindMessage(messageID)
		if m == nil || m.DeletedForAll() {
			return false
		}
		switch scope {
		case DeleteForMe:
			if m.Deleted == models.DeletedForMe {
				return false
			}
			m.Deleted = models.DeletedForMe
		case DeleteForEveryone:
			m.Deleted = models.DeletedForEveryone
		default:
			return false
		}
		if th.PinnedMessageID == messageID {
			th.PinnedMessageID = ""
		}
		logger.Info("message_deleted", "thread", threadID, "id", messageID, "scope", string(scope))
		return true
	})
}

// PinMessage toggles the thread's pin: pinning an already-pinned message
// unpins it, pinning another message replaces the prior pin. At most one
// message is pinned per thread. Deleted-for-everyone messages cannot be
// pinned.
func (s *Store) PinMessage(threadID, messageID string) bool {
	return s.mutate("pin_message", func(snap *models.Snapshot) bool {
		th := snap.FindThread(threadID)
		if th == nil {
			return false
		}
		if th.PinnedMessageID == messageID {
			th.PinnedMessageID = ""
			logger.Info("message_unpinned", "thread", threadID, "id", messageID)
			return true
		}
		m := th.FindMessage(messageID)
		if m == nil || m.DeletedForAll() {
			return false
		}
		th.PinnedMessageID = messageID
		logger.Info("message_pinned", "thread", threadID, "id", messageID)
		return true
	})
}

// ReactToMessage toggles actorID's reaction on the named emoji: a second
// identical call removes it, and an emoji whose actor list empties is
// pruned. An actor may hold reactions on several distinct emojis at once.
func (s *Store) ReactToMessage(threadID, messageID, emoji, actorID string) bool {
	if emoji == "" || actorID == "" {
		return false
	}
	return s.mutate("react_message", func(snap *models.Snapshot) bool {
		th := snap.FindThread(threadID)
		if th == nil {
			return false
		}
		m := th.FindMessage(messageID)
		if m == nil || m.DeletedForAll() {
			return false
		}
		if m.HasReaction(emoji, actorID) {
			actors := m.Reactions[emoji]
			kept := actors[:0]
			for _, a := range actors {
				if a != actorID {
					kept = append(kept, a)
				}
			}
			if len(kept) == 0 {
				delete(m.Reactions, emoji)
				if len(m.Reactions) == 0 {
					m.Reactions = nil
				}
			} else {
				m.Reactions[emoji] = kept
			}
			logger.Debug("reaction_removed", "thread", threadID, "id", messageID, "emoji", emoji, "actor", actorID)
			return true
		}
		if m.Reactions == nil {
			m.Reactions = map[string][]string{}
		}
		m.Reactions[emoji] = append(m.Reactions[emoji], actorID)
		logger.Debug("reaction_added", "thread", threadID, "id", messageID, "emoji", emoji, "actor", actorID)
		return true
	})
}

// ForwardMessage copies the named message's content and attachments into a
// brand-new message appended to the target thread. The copy gets a fresh
// id and timestamp and drops the source's reply target and reactions, so
// later edits of either message never affect the other.
func (s *Store) ForwardMessage(sourceThreadID, messageID, targetThreadID string) string {
	var id string
	s.mutate("forward_message", func(snap *models.Snapshot) bool {
		src := snap.FindThread(sourceThreadID)
		dst := snap.FindThread(targetThreadID)
		if src == nil || dst == nil {
			return false
		}
		m := src.FindMessage(messageID)
		if m == nil || m.DeletedForAll() {
			return false
		}
		now := s.labelNow()
		fwd := models.Message{
			ID:        utils.GenID(),
			Content:   m.Content,
			Sender:    s.self,
			Timestamp: now.Clock,
			Files:     append([]models.Attachment(nil), m.Files...),
			Deleted:   models.DeletedForNone,
		}
		if len(fwd.Files) == 0 {
			fwd.Files = nil
		}
		s.appendMessage(dst, fwd, now)
		id = fwd.ID
		logger.Info("message_forwarded", "from", sourceThreadID, "to", targetThreadID, "id", fwd.ID)
		return true
	})
	return id
}

// AttachMedia appends a message carrying exactly one attachment. The
// attachment must already be decoded and classified (pkg/media); callers
// abandon the operation before reaching here when decoding fails. The
// thread is re-validated at mutation time since decoding happens off the
// critical path and the UI may have navigated away meanwhile.
func (s *Store) AttachMedia(threadID string, att models.Attachment, replyTo string) string {
	content := att.Name
	if att.Kind == models.AttachmentVideo {
		content = "Video: " + att.Name
	}
	return s.SendMessage(threadID, content, []models.Attachment{att}, replyTo)
}

// Threads returns a copy of every thread, in stored order.
func (s *Store) Threads() []models.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone().Threads
}

// ActiveThreadID returns the active-thread pointer, which may be "".
func (s *Store) ActiveThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.ActiveThread
}

// Thread returns a copy of the named thread, or false when it does not
// exist.
func (s *Store) Thread(threadID string) (models.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	th := s.snap.FindThread(threadID)
	if th == nil {
		return models.Thread{}, false
	}
	clone := s.snap.Clone().FindThread(threadID)
	return *clone, true
}

// VisibleMessages returns the thread's messages excluding deleted ones, in
// insertion order. Unknown threads yield an empty slice.
func (s *Store) VisibleMessages(threadID string) []models.Message {
	th, ok := s.Thread(threadID)
	if !ok {
		return nil
	}
	out := make([]models.Message, 0, len(th.Messages))
	for _, m := range th.Messages {
		if m.Visible() {
			out = append(out, m)
		}
	}
	return out
}

// PinnedMessage returns a copy of the thread's pinned message, or false
// when no valid pin is set.
func (s *Store) PinnedMessage(threadID string) (models.Message, bool) {
	th, ok := s.Thread(threadID)
	if !ok {
		return models.Message{}, false
	}
	m := th.PinnedMessage()
	if m == nil {
		return models.Message{}, false
	}
	return *m, true
}

// Snapshot returns a deep copy of the current snapshot, for export and
// diagnostics.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}
