package models

// CounterpartyKind tags who the thread is with.
type CounterpartyKind string

const (
	KindVendor   CounterpartyKind = "vendor"
	KindCustomer CounterpartyKind = "customer"
)

type Thread struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Avatar string           `json:"avatar,omitempty"`
	Kind   CounterpartyKind `json:"kind"`
	Online bool             `json:"is_online"`
	// LastMessage is the truncated preview shown in thread lists.
	LastMessage string `json:"last_message,omitempty"`
	// Timestamp is the last-activity display label ("2 min ago").
	Timestamp string    `json:"timestamp,omitempty"`
	Messages  []Message `json:"messages"`
	// PinnedMessageID references a message in Messages, or is empty. The
	// store clears it when the referenced message is deleted.
	PinnedMessageID string `json:"pinned_message_id,omitempty"`
}

// FindMessage returns a pointer into Messages for the given id, or nil.
func (t *Thread) FindMessage(id string) *Message {
	for i := range t.Messages {
		if t.Messages[i].ID == id {
			return &t.Messages[i]
		}
	}
	return nil
}

// PinnedMessage resolves the pinned reference. It returns nil when no pin
// is set, the reference dangles, or the target was deleted for everyone.
func (t *Thread) PinnedMessage() *Message {
	if t.PinnedMessageID == "" {
		return nil
	}
	m := t.FindMessage(t.PinnedMessageID)
	if m == nil || m.DeletedForAll() {
		return nil
	}
	return m
}
