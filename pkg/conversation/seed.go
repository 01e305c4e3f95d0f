package conversation

import (
	"convstore/pkg/models"
	"convstore/pkg/utils"
)

// Seed describes the single thread installed on first run or after a
// corrupt snapshot is discarded.
type Seed struct {
	Name     string
	Avatar   string
	Kind     models.CounterpartyKind
	Greeting string
}

// DefaultSeed mirrors the client's built-in starter conversation.
func DefaultSeed() Seed {
	return Seed{
		Name:     "Ricky Smith",
		Avatar:   "/avatars/ricky-smith.png",
		Kind:     models.KindVendor,
		Greeting: "Hi!, How are You? \U0001F44B",
	}
}

// seedSnapshot builds the default snapshot: one thread holding one
// counterparty greeting, selected as the active thread.
func seedSnapshot(seed Seed, clock func() Timestamped) *models.Snapshot {
	now := clock()
	threadID := utils.GenThreadID()
	msg := models.Message{
		ID:               utils.GenID(),
		Content:          seed.Greeting,
		Sender:           seed.Name,
		Timestamp:        now.Clock,
		FromCounterparty: true,
		Deleted:          models.DeletedForNone,
	}
	kind := seed.Kind
	if kind == "" {
		kind = models.KindVendor
	}
	return &models.Snapshot{
		Threads: []models.Thread{{
			ID:          threadID,
			Name:        seed.Name,
			Avatar:      seed.Avatar,
			Kind:        kind,
			Online:      true,
			LastMessage: seed.Greeting,
			Timestamp:   now.Relative,
			Messages:    []models.Message{msg},
		}},
		ActiveThread: threadID,
	}
}
