package models

// DeletionState records how far a message has been hidden. The state only
// moves forward: once a message is deleted (for either scope) it never
// returns to DeletedForNone.
type DeletionState string

const (
	DeletedForNone     DeletionState = "none"
	DeletedForMe       DeletionState = "me"
	DeletedForEveryone DeletionState = "everyone"
)

// Valid reports whether s is one of the three known deletion states. An
// empty value is accepted and treated as DeletedForNone for snapshots
// written by older builds.
func (s DeletionState) Valid() bool {
	switch s {
	case "", DeletedForNone, DeletedForMe, DeletedForEveryone:
		return true
	}
	return false
}

type Message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Sender  string `json:"sender,omitempty"`
	// Timestamp is a display label ("11:00AM"), not a machine clock.
	Timestamp string `json:"timestamp,omitempty"`
	// FromCounterparty marks messages authored by the thread's counterparty
	// rather than the local user.
	FromCounterparty bool         `json:"is_counterparty"`
	Files            []Attachment `json:"files,omitempty"`
	// ReplyTo names another message in the same thread. A dangling
	// reference is tolerated; readers render it as unavailable.
	ReplyTo string        `json:"reply_to,omitempty"`
	Edited  bool          `json:"edited,omitempty"`
	Deleted DeletionState `json:"deleted_for,omitempty"`
	// Reactions maps emoji -> actor ids. The count for an emoji is the
	// length of its actor list; an emoji with no actors is pruned.
	Reactions map[string][]string `json:"reactions,omitempty"`
}

// DeletedForAll reports whether the message reached the absorbing
// hidden-for-everyone state.
func (m *Message) DeletedForAll() bool { return m.Deleted == DeletedForEveryone }

// Visible reports whether the message should appear in thread views. Both
// deletion scopes hide the message from the local rendering.
func (m *Message) Visible() bool {
	return m.Deleted == "" || m.Deleted == DeletedForNone
}

// HasReaction reports whether actor currently holds a reaction on emoji.
func (m *Message) HasReaction(emoji, actor string) bool {
	for _, a := range m.Reactions[emoji] {
		if a == actor {
			return true
		}
	}
	return false
}
