// Package store implements the persisted collection repositories:
// favorites and galleries, each owning one versioned envelope in the
// backing store.
//
// Every mutation runs a full read-modify-write cycle under the
// repository mutex (load envelope, mutate, save envelope, notify), so no
// stale read is ever carried across a write within one instance. Across
// instances the last write wins; concurrent cross-instance edits are not
// merged.
//
// Not-found conditions are reported as (zero, false) or false, never as
// errors.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/envelope"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
	"github.com/curiohq/curio/internal/notify"
)

// Favorites is the repository over the item_id -> Favorite mapping.
type Favorites struct {
	codec *envelope.Codec[domain.Favorite]
	hub   *notify.Hub
	snap  *notify.Snapshot[domain.Favorite]
	now   func() time.Time

	mu sync.Mutex
}

// NewFavorites creates the favorites repository. kvStore may be nil for
// storage-less contexts: reads come back empty and writes are skipped.
func NewFavorites(kvStore kv.Store, log logger.Logger) *Favorites {
	codec := envelope.New[domain.Favorite](kvStore, FavoritesKey, FavoritesVersion, migrateFavorites, log)
	return &Favorites{
		codec: codec,
		hub:   notify.NewHub(kvStore, FavoritesKey, log),
		snap:  notify.NewSnapshot(codec),
		now:   time.Now,
	}
}

// migrateFavorites upgrades payloads from older schema generations.
// There is only one generation so far; future version bumps add a branch
// here without touching any call site.
func migrateFavorites(_ int, payload map[string]domain.Favorite) map[string]domain.Favorite {
	return payload
}

// List returns the full current mapping, freshly parsed. For a
// reference-stable view use Snapshot.
func (f *Favorites) List(ctx context.Context) map[string]domain.Favorite {
	return f.codec.Load(ctx)
}

// Get returns the favorite for itemID, if any.
func (f *Favorites) Get(ctx context.Context, itemID int64) (domain.Favorite, bool) {
	fav, ok := f.codec.Load(ctx)[FavoriteKey(itemID)]
	return fav, ok
}

// Contains reports whether itemID is favorited.
func (f *Favorites) Contains(ctx context.Context, itemID int64) bool {
	_, ok := f.codec.Load(ctx)[FavoriteKey(itemID)]
	return ok
}

// Add upserts a favorite with field-level preservation: Title and
// ThumbnailURL always take the new input, while Notes and Tags are
// overwritten only when explicitly provided (non-nil), and CreatedAt is
// never touched on an existing record.
func (f *Favorites) Add(ctx context.Context, in domain.FavoriteInput) domain.Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.codec.Load(ctx)
	fav := f.upsert(all, in)
	f.codec.Save(ctx, all)
	f.hub.Publish()
	return fav
}

// upsert applies Add semantics to the loaded mapping. Callers hold f.mu.
func (f *Favorites) upsert(all map[string]domain.Favorite, in domain.FavoriteInput) domain.Favorite {
	key := FavoriteKey(in.ItemID)
	now := f.now()

	fav, exists := all[key]
	if !exists {
		fav = domain.Favorite{
			ItemID:    in.ItemID,
			Tags:      []string{},
			CreatedAt: now,
		}
	}
	fav.Title = in.Title
	fav.ThumbnailURL = in.ThumbnailURL
	if in.Notes != nil {
		fav.Notes = *in.Notes
	}
	if in.Tags != nil {
		fav.Tags = NormalizeTags(in.Tags)
	}
	fav.UpdatedAt = now

	all[key] = fav
	return fav
}

// Update applies a partial update to an existing favorite. It never
// creates one: a missing itemID yields (zero, false) and no write.
func (f *Favorites) Update(ctx context.Context, itemID int64, upd domain.FavoriteUpdate) (domain.Favorite, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.codec.Load(ctx)
	key := FavoriteKey(itemID)
	fav, ok := all[key]
	if !ok {
		return domain.Favorite{}, false
	}

	if upd.Notes != nil {
		fav.Notes = *upd.Notes
	}
	if upd.Tags != nil {
		fav.Tags = NormalizeTags(upd.Tags)
	}
	fav.UpdatedAt = f.now()

	all[key] = fav
	f.codec.Save(ctx, all)
	f.hub.Publish()
	return fav, true
}

// Remove deletes a favorite. Removing a missing itemID is a no-op that
// returns false and performs no write.
func (f *Favorites) Remove(ctx context.Context, itemID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.codec.Load(ctx)
	key := FavoriteKey(itemID)
	if _, ok := all[key]; !ok {
		return false
	}

	delete(all, key)
	f.codec.Save(ctx, all)
	f.hub.Publish()
	return true
}

// Toggle removes the favorite if present (returning false: no longer
// favorited) or adds it if absent (returning true: now favorited).
func (f *Favorites) Toggle(ctx context.Context, in domain.FavoriteInput) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.codec.Load(ctx)
	key := FavoriteKey(in.ItemID)
	if _, ok := all[key]; ok {
		delete(all, key)
		f.codec.Save(ctx, all)
		f.hub.Publish()
		return false
	}

	f.upsert(all, in)
	f.codec.Save(ctx, all)
	f.hub.Publish()
	return true
}

// AllTags returns the sorted, deduplicated union of tags across all
// favorites.
func (f *Favorites) AllTags(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for _, fav := range f.codec.Load(ctx) {
		for _, tag := range fav.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ByTag returns the favorites whose tag set contains tag, ordered by
// item ID for determinism.
func (f *Favorites) ByTag(ctx context.Context, tag string) []domain.Favorite {
	tag = strings.ToLower(strings.TrimSpace(tag))

	var out []domain.Favorite
	for _, fav := range f.codec.Load(ctx) {
		for _, t := range fav.Tags {
			if t == tag {
				out = append(out, fav)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Subscribe registers an observer; see notify.Hub.
func (f *Favorites) Subscribe(fn func()) func() {
	return f.hub.Subscribe(fn)
}

// Snapshot returns the reference-stable current mapping; see
// notify.Snapshot.
func (f *Favorites) Snapshot(ctx context.Context) map[string]domain.Favorite {
	return f.snap.Get(ctx)
}

// ResetSnapshot drops the snapshot cache. For tests.
func (f *Favorites) ResetSnapshot() {
	f.snap.Reset()
}

// importAll overlays entries onto the stored mapping, imported entries
// winning on key conflicts, then persists and notifies.
func (f *Favorites) importAll(ctx context.Context, entries map[string]domain.Favorite) {
	if len(entries) == 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	all := f.codec.Load(ctx)
	for key, fav := range entries {
		all[key] = fav
	}
	f.codec.Save(ctx, all)
	f.hub.Publish()
}

// NormalizeTags lowercases, trims, and deduplicates tags while
// preserving first-occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
