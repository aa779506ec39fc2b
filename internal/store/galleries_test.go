package store

import (
	"context"
	"testing"
	"time"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

func newTestGalleries() (*Galleries, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	g := NewGalleries(kv.NewMemory(), logger.NewNop())
	g.now = clock.Now
	return g, clock
}

// checkContiguity fails the test unless positions are exactly 0..n-1 in
// slice order.
func checkContiguity(t *testing.T, gal domain.Gallery) {
	t.Helper()
	for i, it := range gal.Items {
		if it.Position != i {
			t.Errorf("item %d (id %d) has position %d, want %d", i, it.ItemID, it.Position, i)
		}
	}
}

func itemIDs(gal domain.Gallery) []int64 {
	ids := make([]int64, len(gal.Items))
	for i, it := range gal.Items {
		ids[i] = it.ItemID
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateGallery(t *testing.T) {
	g, clock := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips", Description: "summer"})

	if gal.ID == "" {
		t.Fatal("Create() returned empty ID")
	}
	if gal.Name != "Trips" || gal.Description != "summer" {
		t.Errorf("Create() = %+v", gal)
	}
	if len(gal.Items) != 0 {
		t.Errorf("Create() items = %v, want empty", gal.Items)
	}
	if !gal.CreatedAt.Equal(clock.t) || !gal.UpdatedAt.Equal(clock.t) {
		t.Errorf("Create() timestamps = %v/%v, want %v", gal.CreatedAt, gal.UpdatedAt, clock.t)
	}

	got, ok := g.Get(ctx, gal.ID)
	if !ok || got.Name != "Trips" {
		t.Errorf("Get() after Create = %+v, %v", got, ok)
	}
}

func TestCreateGalleryUniqueIDs(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	a := g.Create(ctx, domain.GalleryInput{Name: "A"})
	b := g.Create(ctx, domain.GalleryInput{Name: "A"})
	if a.ID == b.ID {
		t.Errorf("two Create() calls returned the same ID %q", a.ID)
	}
}

func TestUpdateGalleryPartial(t *testing.T) {
	g, clock := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Old", Description: "desc"})
	clock.Advance(time.Minute)

	updated, ok := g.Update(ctx, gal.ID, domain.GalleryUpdate{Name: strPtr("New")})
	if !ok {
		t.Fatal("Update() failed on existing gallery")
	}
	if updated.Name != "New" {
		t.Errorf("Update() name = %q, want New", updated.Name)
	}
	if updated.Description != "desc" {
		t.Errorf("Update() without description changed it: %q", updated.Description)
	}
	if !updated.UpdatedAt.After(gal.UpdatedAt) {
		t.Error("Update() did not advance updated_at")
	}

	if _, ok := g.Update(ctx, "missing", domain.GalleryUpdate{}); ok {
		t.Error("Update() on missing gallery reported success")
	}
}

func TestDeleteGalleryIdempotent(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips"})
	g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 1, Title: "One"})

	if !g.Delete(ctx, gal.ID) {
		t.Error("Delete() existing = false")
	}
	if g.Delete(ctx, gal.ID) {
		t.Error("Delete() twice = true")
	}
	if _, ok := g.Get(ctx, gal.ID); ok {
		t.Error("gallery still present after Delete")
	}
}

func TestAddItemIdempotent(t *testing.T) {
	g, clock := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips"})
	first, _ := g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 5, Title: "Five"})

	clock.Advance(time.Minute)
	second, ok := g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 5, Title: "Five again"})
	if !ok {
		t.Fatal("AddItem() duplicate reported missing gallery")
	}
	if len(second.Items) != 1 {
		t.Fatalf("duplicate AddItem() left %d items, want 1", len(second.Items))
	}
	if second.Items[0].Title != "Five" {
		t.Errorf("duplicate AddItem() overwrote title: %q", second.Items[0].Title)
	}
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("duplicate AddItem() bumped updated_at")
	}
}

func TestAddItemMissingGallery(t *testing.T) {
	g, _ := newTestGalleries()

	_, ok := g.AddItem(context.Background(), "missing", domain.GalleryItemInput{ItemID: 1})
	if ok {
		t.Error("AddItem() on missing gallery reported success")
	}
}

func TestRemoveItemRenumbers(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips"})
	for id := int64(1); id <= 4; id++ {
		g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: id})
	}

	got, ok := g.RemoveItem(ctx, gal.ID, 2)
	if !ok {
		t.Fatal("RemoveItem() failed")
	}
	if !equalIDs(itemIDs(got), []int64{1, 3, 4}) {
		t.Errorf("RemoveItem() order = %v, want [1 3 4]", itemIDs(got))
	}
	checkContiguity(t, got)

	// Removing a missing item leaves the gallery unchanged.
	same, ok := g.RemoveItem(ctx, gal.ID, 99)
	if !ok {
		t.Fatal("RemoveItem() missing item reported missing gallery")
	}
	if !equalIDs(itemIDs(same), []int64{1, 3, 4}) {
		t.Errorf("RemoveItem() of missing item changed items: %v", itemIDs(same))
	}
}

func TestPositionContiguityAfterSequence(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Churn"})
	for id := int64(1); id <= 6; id++ {
		g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: id})
	}
	g.RemoveItem(ctx, gal.ID, 1)
	g.RemoveItem(ctx, gal.ID, 4)
	g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 7})
	g.RemoveItem(ctx, gal.ID, 6)
	g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 8})

	got, _ := g.Get(ctx, gal.ID)
	checkContiguity(t, got)
	if !equalIDs(itemIDs(got), []int64{2, 3, 5, 7, 8}) {
		t.Errorf("items after churn = %v, want [2 3 5 7 8]", itemIDs(got))
	}
}

func TestReorderTailPreservation(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips"})
	for id := int64(1); id <= 4; id++ {
		g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: id})
	}

	got, ok := g.ReorderItems(ctx, gal.ID, []int64{3, 1})
	if !ok {
		t.Fatal("ReorderItems() failed")
	}
	if !equalIDs(itemIDs(got), []int64{3, 1, 2, 4}) {
		t.Errorf("ReorderItems([3 1]) = %v, want [3 1 2 4]", itemIDs(got))
	}
	checkContiguity(t, got)
}

func TestReorderIgnoresUnknownIDs(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	gal := g.Create(ctx, domain.GalleryInput{Name: "Trips"})
	for id := int64(1); id <= 3; id++ {
		g.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: id})
	}

	got, _ := g.ReorderItems(ctx, gal.ID, []int64{99, 2, 2, 42})
	if !equalIDs(itemIDs(got), []int64{2, 1, 3}) {
		t.Errorf("ReorderItems with unknown ids = %v, want [2 1 3]", itemIDs(got))
	}
	checkContiguity(t, got)
}

func TestGalleriesContaining(t *testing.T) {
	g, clock := newTestGalleries()
	ctx := context.Background()

	a := g.Create(ctx, domain.GalleryInput{Name: "A"})
	clock.Advance(time.Second)
	b := g.Create(ctx, domain.GalleryInput{Name: "B"})
	clock.Advance(time.Second)
	g.Create(ctx, domain.GalleryInput{Name: "C"})

	g.AddItem(ctx, a.ID, domain.GalleryItemInput{ItemID: 5})
	g.AddItem(ctx, b.ID, domain.GalleryItemInput{ItemID: 5})

	got := g.GalleriesContaining(ctx, 5)
	if len(got) != 2 {
		t.Fatalf("GalleriesContaining(5) returned %d galleries, want 2", len(got))
	}
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("GalleriesContaining(5) order = [%s %s], want [%s %s]",
			got[0].ID, got[1].ID, a.ID, b.ID)
	}

	if got := g.GalleriesContaining(ctx, 404); len(got) != 0 {
		t.Errorf("GalleriesContaining(404) = %v, want empty", got)
	}
}

func TestGalleryItemsAreIndependentCopies(t *testing.T) {
	g, _ := newTestGalleries()
	ctx := context.Background()

	a := g.Create(ctx, domain.GalleryInput{Name: "A"})
	b := g.Create(ctx, domain.GalleryInput{Name: "B"})
	g.AddItem(ctx, a.ID, domain.GalleryItemInput{ItemID: 5, Title: "Five"})
	g.AddItem(ctx, b.ID, domain.GalleryItemInput{ItemID: 5, Title: "Five"})

	g.Delete(ctx, a.ID)

	got, ok := g.Get(ctx, b.ID)
	if !ok || len(got.Items) != 1 {
		t.Errorf("deleting gallery A affected gallery B: %+v, %v", got, ok)
	}
}
