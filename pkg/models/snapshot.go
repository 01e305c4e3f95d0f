package models

import "fmt"

// Snapshot is the persisted root: every thread plus the active-thread
// pointer. A new value is computed after each mutation and handed to the
// persistence adapter; it is read back once at startup.
type Snapshot struct {
	Threads      []Thread `json:"chats"`
	ActiveThread string   `json:"active_chat,omitempty"`
}

// FindThread returns a pointer into Threads for the given id, or nil.
func (s *Snapshot) FindThread(id string) *Thread {
	for i := range s.Threads {
		if s.Threads[i].ID == id {
			return &s.Threads[i]
		}
	}
	return nil
}

// Validate performs basic shape checks on a loaded snapshot. A snapshot
// that fails validation is discarded and the store reseeds rather than
// carrying corrupt state forward.
func (s *Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Threads))
	for i := range s.Threads {
		t := &s.Threads[i]
		if t.ID == "" {
			return fmt.Errorf("thread %d has empty id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate thread id %s", t.ID)
		}
		seen[t.ID] = struct{}{}
		msgSeen := make(map[string]struct{}, len(t.Messages))
		for j := range t.Messages {
			m := &t.Messages[j]
			if m.ID == "" {
				return fmt.Errorf("thread %s message %d has empty id", t.ID, j)
			}
			if _, dup := msgSeen[m.ID]; dup {
				return fmt.Errorf("thread %s has duplicate message id %s", t.ID, m.ID)
			}
			msgSeen[m.ID] = struct{}{}
			if !m.Deleted.Valid() {
				return fmt.Errorf("thread %s message %s has unknown deletion state %q", t.ID, m.ID, m.Deleted)
			}
		}
		if t.PinnedMessageID != "" {
			if _, ok := msgSeen[t.PinnedMessageID]; !ok {
				return fmt.Errorf("thread %s pin references unknown message %s", t.ID, t.PinnedMessageID)
			}
		}
	}
	if s.ActiveThread != "" {
		if _, ok := seen[s.ActiveThread]; !ok {
			return fmt.Errorf("active thread %s does not exist", s.ActiveThread)
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot. Mutations operate on a clone
// so no caller ever observes a partially applied state.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{ActiveThread: s.ActiveThread}
	if s.Threads != nil {
		out.Threads = make([]Thread, len(s.Threads))
		copy(out.Threads, s.Threads)
		for i := range out.Threads {
			t := &out.Threads[i]
			if t.Messages != nil {
				msgs := make([]Message, len(t.Messages))
				copy(msgs, t.Messages)
				for j := range msgs {
					m := &msgs[j]
					if m.Files != nil {
						m.Files = append([]Attachment(nil), m.Files...)
					}
					if m.Reactions != nil {
						rs := make(map[string][]string, len(m.Reactions))
						for k, v := range m.Reactions {
							rs[k] = append([]string(nil), v...)
						}
						m.Reactions = rs
					}
				}
				t.Messages = msgs
			}
		}
	}
	return out
}
