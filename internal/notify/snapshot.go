package notify

import (
	"context"
	"sync"

	"github.com/curiohq/curio/internal/envelope"
)

// Snapshot is a single-slot cache of one (raw string, parsed mapping)
// pair. Invalidation rule: the cached mapping is reused iff the raw
// persisted string is byte-identical to the one last parsed.
//
// Consumers compare snapshots by reference to decide whether anything
// changed; returning a structurally-equal-but-fresh map on every call
// would defeat that and force re-computation on every read.
type Snapshot[V any] struct {
	codec *envelope.Codec[V]

	mu     sync.Mutex
	raw    string
	loaded bool
	parsed map[string]V
}

// NewSnapshot creates a snapshot cache over codec.
func NewSnapshot[V any](codec *envelope.Codec[V]) *Snapshot[V] {
	return &Snapshot[V]{codec: codec}
}

// Get returns the current mapping. Two consecutive calls with no
// intervening write return the identical map reference.
//
// Callers must treat the returned map as read-only.
func (s *Snapshot[V]) Get(ctx context.Context) map[string]V {
	raw, ok := s.codec.Raw(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && raw == s.raw {
		return s.parsed
	}
	s.raw = raw
	if ok {
		s.parsed = s.codec.Decode(raw)
	} else {
		s.parsed = map[string]V{}
	}
	s.loaded = true
	return s.parsed
}

// Reset drops the cached pair. The next Get re-reads and re-parses.
// Intended for test isolation.
func (s *Snapshot[V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = ""
	s.loaded = false
	s.parsed = nil
}
