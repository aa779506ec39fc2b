package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/envelope"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
	"github.com/curiohq/curio/internal/notify"
)

// Galleries is the repository over the gallery_id -> Gallery mapping.
//
// The one structural invariant it maintains is item position
// contiguity: after any mutation, the Position values of a gallery's
// items are exactly 0..len(items)-1 in slice order.
type Galleries struct {
	codec *envelope.Codec[domain.Gallery]
	hub   *notify.Hub
	snap  *notify.Snapshot[domain.Gallery]
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// NewGalleries creates the galleries repository. kvStore may be nil for
// storage-less contexts.
func NewGalleries(kvStore kv.Store, log logger.Logger) *Galleries {
	codec := envelope.New[domain.Gallery](kvStore, GalleriesKey, GalleriesVersion, migrateGalleries, log)
	return &Galleries{
		codec: codec,
		hub:   notify.NewHub(kvStore, GalleriesKey, log),
		snap:  notify.NewSnapshot(codec),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func migrateGalleries(_ int, payload map[string]domain.Gallery) map[string]domain.Gallery {
	return payload
}

// List returns the full current mapping, freshly parsed.
func (g *Galleries) List(ctx context.Context) map[string]domain.Gallery {
	return g.codec.Load(ctx)
}

// Get returns the gallery with the given ID, if any.
func (g *Galleries) Get(ctx context.Context, id string) (domain.Gallery, bool) {
	gal, ok := g.codec.Load(ctx)[id]
	return gal, ok
}

// Create makes a new empty gallery with a generated ID.
//
// An empty name is accepted here: the repository stores whatever it is
// given, and the boundary that accepts untrusted input is responsible
// for rejecting blank names before they reach it.
func (g *Galleries) Create(ctx context.Context, in domain.GalleryInput) domain.Gallery {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	gal := domain.Gallery{
		ID:          g.newID(),
		Name:        in.Name,
		Description: in.Description,
		Items:       []domain.GalleryItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	all := g.codec.Load(ctx)
	all[gal.ID] = gal
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return gal
}

// Update applies a partial name/description update.
func (g *Galleries) Update(ctx context.Context, id string, upd domain.GalleryUpdate) (domain.Gallery, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	gal, ok := all[id]
	if !ok {
		return domain.Gallery{}, false
	}

	if upd.Name != nil {
		gal.Name = *upd.Name
	}
	if upd.Description != nil {
		gal.Description = *upd.Description
	}
	gal.UpdatedAt = g.now()

	all[id] = gal
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return gal, true
}

// Delete removes a gallery and, with it, its entire item list. Deleting
// a missing ID returns false and performs no write.
func (g *Galleries) Delete(ctx context.Context, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	if _, ok := all[id]; !ok {
		return false
	}

	delete(all, id)
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return true
}

// AddItem appends an item to the gallery. Adding an item_id already
// present is idempotent: the gallery is returned unchanged, with no
// UpdatedAt bump and no write.
func (g *Galleries) AddItem(ctx context.Context, id string, in domain.GalleryItemInput) (domain.Gallery, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	gal, ok := all[id]
	if !ok {
		return domain.Gallery{}, false
	}
	if gal.ItemIndex(in.ItemID) >= 0 {
		return gal, true
	}

	now := g.now()
	gal.Items = append(gal.Items, domain.GalleryItem{
		ItemID:       in.ItemID,
		Title:        in.Title,
		ThumbnailURL: in.ThumbnailURL,
		Position:     len(gal.Items),
		AddedAt:      now,
	})
	gal.UpdatedAt = now

	all[id] = gal
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return gal, true
}

// RemoveItem deletes an item and renumbers the remaining positions back
// to 0..n-1 in their current relative order. Positions must never
// contain gaps. A missing item leaves the gallery unchanged.
func (g *Galleries) RemoveItem(ctx context.Context, id string, itemID int64) (domain.Gallery, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	gal, ok := all[id]
	if !ok {
		return domain.Gallery{}, false
	}
	idx := gal.ItemIndex(itemID)
	if idx < 0 {
		return gal, true
	}

	gal.Items = append(gal.Items[:idx:idx], gal.Items[idx+1:]...)
	renumber(gal.Items)
	gal.UpdatedAt = g.now()

	all[id] = gal
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return gal, true
}

// ReorderItems rebuilds the gallery's item order from orderedIDs: items
// named there come first, in that order; items not mentioned keep their
// prior relative order and move to the tail. Partial reorders from a
// stale caller view therefore never drop items. Unknown IDs in
// orderedIDs are ignored.
func (g *Galleries) ReorderItems(ctx context.Context, id string, orderedIDs []int64) (domain.Gallery, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	gal, ok := all[id]
	if !ok {
		return domain.Gallery{}, false
	}

	mentioned := make(map[int64]struct{}, len(orderedIDs))
	reordered := make([]domain.GalleryItem, 0, len(gal.Items))
	for _, itemID := range orderedIDs {
		idx := gal.ItemIndex(itemID)
		if idx < 0 {
			continue
		}
		if _, dup := mentioned[itemID]; dup {
			continue
		}
		mentioned[itemID] = struct{}{}
		reordered = append(reordered, gal.Items[idx])
	}
	for _, it := range gal.Items {
		if _, ok := mentioned[it.ItemID]; !ok {
			reordered = append(reordered, it)
		}
	}

	gal.Items = reordered
	renumber(gal.Items)
	gal.UpdatedAt = g.now()

	all[id] = gal
	g.codec.Save(ctx, all)
	g.hub.Publish()
	return gal, true
}

// GalleriesContaining returns every gallery holding itemID, ordered by
// creation time then ID for determinism.
func (g *Galleries) GalleriesContaining(ctx context.Context, itemID int64) []domain.Gallery {
	var out []domain.Gallery
	for _, gal := range g.codec.Load(ctx) {
		if gal.ItemIndex(itemID) >= 0 {
			out = append(out, gal)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Subscribe registers an observer; see notify.Hub.
func (g *Galleries) Subscribe(fn func()) func() {
	return g.hub.Subscribe(fn)
}

// Snapshot returns the reference-stable current mapping.
func (g *Galleries) Snapshot(ctx context.Context) map[string]domain.Gallery {
	return g.snap.Get(ctx)
}

// ResetSnapshot drops the snapshot cache. For tests.
func (g *Galleries) ResetSnapshot() {
	g.snap.Reset()
}

func (g *Galleries) importAll(ctx context.Context, entries map[string]domain.Gallery) {
	if len(entries) == 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.codec.Load(ctx)
	for key, gal := range entries {
		all[key] = gal
	}
	g.codec.Save(ctx, all)
	g.hub.Publish()
}

func renumber(items []domain.GalleryItem) {
	for i := range items {
		items[i].Position = i
	}
}
