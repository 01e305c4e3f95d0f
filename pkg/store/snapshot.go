package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"convstore/pkg/logger"
	"convstore/pkg/models"
)

// DefaultSnapshotKey is the single well-known key the whole snapshot is
// stored under.
const DefaultSnapshotKey = "convstore:snapshot"

// SnapshotStore persists the conversation snapshot durably with graceful
// degradation: when the primary store fails, writes land in the in-memory
// fallback and the degradation callback fires. Save never returns an error
// to the caller.
type SnapshotStore struct {
	key      string
	primary  KV
	fallback KV

	mu       sync.Mutex
	degraded bool

	// OnDegrade, if set, is invoked with a human-readable reason each time
	// a save falls back to memory or the primary is found unusable.
	OnDegrade func(reason string)
}

// NewSnapshotStore builds a snapshot store over the given primary KV. The
// key may be empty to use DefaultSnapshotKey.
func NewSnapshotStore(primary KV, key string) *SnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotStore{key: key, primary: primary, fallback: NewMemoryKV()}
}

// Degraded reports whether the store has fallen back to in-memory-only
// persistence for this session.
func (s *SnapshotStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *SnapshotStore) degrade(reason string) {
	s.mu.Lock()
	first := !s.degraded
	s.degraded = true
	s.mu.Unlock()
	snapshotFallbacks.Inc()
	if first && s.OnDegrade != nil {
		s.OnDegrade(reason)
	}
}

// Probe performs a best-effort write-then-delete test against the primary
// store. It is called once at startup to decide whether the primary is
// usable as the system of record for the session.
func (s *SnapshotStore) Probe() bool {
	if s.primary == nil {
		s.degrade("primary store not configured")
		return false
	}
	probeKey := s.key + ":probe"
	if err := s.primary.Set(probeKey, []byte("probe")); err != nil {
		logger.Warn("snapshot_probe_failed", "error", err)
		s.degrade(fmt.Sprintf("durable store unavailable: %v", err))
		return false
	}
	_ = s.primary.Delete(probeKey)
	return true
}

// Save serializes the snapshot and writes it durably. On any failure
// (serialization, quota, store unavailable) the snapshot is kept in the
// in-memory fallback instead and a degradation notice is raised; the
// logical operation that triggered the save still succeeds.
func (s *SnapshotStore) Save(snap *models.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		// Snapshot values are plain data; marshal failure means a bug, but
		// the contract is to never throw outward.
		logger.Error("snapshot_marshal_failed", "error", err)
		snapshotSaves.WithLabelValues("error").Inc()
		return
	}
	s.mu.Lock()
	degraded := s.degraded
	s.mu.Unlock()
	if !degraded && s.primary != nil {
		if err := s.primary.Set(s.key, data); err == nil {
			snapshotSaves.WithLabelValues("primary").Inc()
			return
		} else {
			logger.Warn("snapshot_save_primary_failed", "error", err)
			s.degrade(fmt.Sprintf("durable save failed: %v", err))
		}
	}
	if err := s.fallback.Set(s.key, data); err != nil {
		logger.Error("snapshot_save_fallback_failed", "error", err)
		snapshotSaves.WithLabelValues("error").Inc()
		return
	}
	snapshotSaves.WithLabelValues("fallback").Inc()
}

// Load reads and deserializes the most recent snapshot. It tries the
// primary store first, then the in-memory fallback. The second return is
// false when no usable snapshot exists (miss, parse failure, or shape
// validation failure), which triggers default-seed behavior upstream.
func (s *SnapshotStore) Load() (*models.Snapshot, bool) {
	if snap, ok := s.loadFrom(s.primary, "primary"); ok {
		return snap, true
	}
	if snap, ok := s.loadFrom(s.fallback, "fallback"); ok {
		return snap, true
	}
	snapshotLoadMisses.Inc()
	return nil, false
}

func (s *SnapshotStore) loadFrom(kv KV, source string) (*models.Snapshot, bool) {
	if kv == nil {
		return nil, false
	}
	data, err := kv.Get(s.key)
	if err != nil {
		if err != ErrNotFound {
			logger.Warn("snapshot_load_failed", "source", source, "error", err)
		}
		return nil, false
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Error("snapshot_parse_failed", "source", source, "error", err)
		return nil, false
	}
	if err := snap.Validate(); err != nil {
		// Fail closed: a corrupt snapshot is discarded and the caller
		// reinstalls the default seed.
		logger.Error("snapshot_invalid", "source", source, "error", err)
		return nil, false
	}
	return &snap, true
}
