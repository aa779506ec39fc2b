// Package envelope translates between an in-memory entity mapping and
// the versioned JSON string persisted under one backing-store key.
//
// Corruption and storage failures never propagate: a load that cannot be
// parsed degrades to an empty mapping, and a save without a usable
// backing store is skipped. The worst outcome is "this change did not
// persist", never a crashed caller.
package envelope

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

// MigrateFunc upgrades a payload written by an older schema generation.
// It receives the persisted version and payload and returns the payload
// reshaped for the current version. Adding a schema generation adds a
// branch inside one MigrateFunc; call sites never change.
type MigrateFunc[V any] func(oldVersion int, payload map[string]V) map[string]V

// wire is the persisted shape: {"version": N, "payload": {...}}.
type wire[V any] struct {
	Version int          `json:"version"`
	Payload map[string]V `json:"payload"`
}

// Codec owns one storage key and its schema version.
type Codec[V any] struct {
	store   kv.Store
	key     string
	version int
	migrate MigrateFunc[V]
	logger  logger.Logger
}

// New creates a codec for key at the given schema version. store may be
// nil, meaning no durable backing store is available: loads return empty
// mappings and saves are no-ops. migrate may be nil when only one schema
// generation exists.
func New[V any](store kv.Store, key string, version int, migrate MigrateFunc[V], log logger.Logger) *Codec[V] {
	return &Codec[V]{
		store:   store,
		key:     key,
		version: version,
		migrate: migrate,
		logger:  log,
	}
}

// Key returns the backing-store key this codec reads and writes.
func (c *Codec[V]) Key() string { return c.key }

// Raw returns the exact persisted string and whether one exists. Storage
// errors other than not-found are logged and reported as absent.
func (c *Codec[V]) Raw(ctx context.Context) (string, bool) {
	if c.store == nil {
		return "", false
	}
	raw, err := c.store.Read(ctx, c.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			c.logger.Warn("backing store read failed, treating as empty",
				logger.String("key", c.key),
				logger.Error(err))
		}
		return "", false
	}
	return raw, true
}

// Load reads and decodes the current mapping. An absent key, a read
// failure, or a corrupted envelope all yield an empty mapping.
func (c *Codec[V]) Load(ctx context.Context) map[string]V {
	raw, ok := c.Raw(ctx)
	if !ok {
		return map[string]V{}
	}
	return c.Decode(raw)
}

// Decode parses a raw envelope string into a mapping, applying the
// migration hook when the persisted version differs from the current
// one. Unparseable input degrades to an empty mapping.
func (c *Codec[V]) Decode(raw string) map[string]V {
	var w wire[V]
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		c.logger.Warn("corrupted envelope, starting from empty",
			logger.String("key", c.key),
			logger.Error(err))
		return map[string]V{}
	}
	payload := w.Payload
	if payload == nil {
		payload = map[string]V{}
	}
	if w.Version != c.version && c.migrate != nil {
		payload = c.migrate(w.Version, payload)
	}
	return payload
}

// Save writes the full envelope back. Without a backing store this is a
// no-op; a failed write is logged and swallowed.
func (c *Codec[V]) Save(ctx context.Context, payload map[string]V) {
	if c.store == nil {
		c.logger.Debug("no backing store, skipping save",
			logger.String("key", c.key))
		return
	}
	data, err := json.Marshal(wire[V]{Version: c.version, Payload: payload})
	if err != nil {
		c.logger.Warn("failed to marshal envelope",
			logger.String("key", c.key),
			logger.Error(err))
		return
	}
	if err := c.store.Write(ctx, c.key, string(data)); err != nil {
		c.logger.Warn("failed to persist envelope",
			logger.String("key", c.key),
			logger.Error(err))
	}
}

// Store exposes the underlying backing store (nil when unavailable).
func (c *Codec[V]) Store() kv.Store { return c.store }
