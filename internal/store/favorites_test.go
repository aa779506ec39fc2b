package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestFavorites() (*Favorites, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	f := NewFavorites(kv.NewMemory(), logger.NewNop())
	f.now = clock.Now
	return f, clock
}

func strPtr(s string) *string {
	return &s
}

func TestAddCreatesFavorite(t *testing.T) {
	f, clock := newTestFavorites()
	ctx := context.Background()

	fav := f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "Sunset"})

	if fav.ItemID != 1 || fav.Title != "Sunset" {
		t.Errorf("Add() = %+v, want item 1 titled Sunset", fav)
	}
	if fav.Notes != "" {
		t.Errorf("Add() notes = %q, want empty", fav.Notes)
	}
	if len(fav.Tags) != 0 {
		t.Errorf("Add() tags = %v, want empty", fav.Tags)
	}
	if !fav.CreatedAt.Equal(clock.t) || !fav.UpdatedAt.Equal(clock.t) {
		t.Errorf("Add() timestamps = %v/%v, want %v", fav.CreatedAt, fav.UpdatedAt, clock.t)
	}
	if !f.Contains(ctx, 1) {
		t.Error("Contains() = false after Add")
	}
}

func TestAddUpsertPreservesNotesAndTags(t *testing.T) {
	f, clock := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "A",
		Notes:  strPtr("my notes"),
		Tags:   []string{"sunset", "beach"},
	})
	created := clock.t

	clock.Advance(time.Minute)
	fav := f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "B"})

	if fav.Title != "B" {
		t.Errorf("upsert title = %q, want B", fav.Title)
	}
	if fav.Notes != "my notes" {
		t.Errorf("upsert without notes overwrote them: %q", fav.Notes)
	}
	if !reflect.DeepEqual(fav.Tags, []string{"sunset", "beach"}) {
		t.Errorf("upsert without tags overwrote them: %v", fav.Tags)
	}
	if !fav.CreatedAt.Equal(created) {
		t.Errorf("upsert changed created_at: %v, want %v", fav.CreatedAt, created)
	}
	if !fav.UpdatedAt.After(created) {
		t.Errorf("upsert did not advance updated_at: %v", fav.UpdatedAt)
	}
}

func TestAddExplicitEmptyClears(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "A",
		Notes:  strPtr("keep me?"),
		Tags:   []string{"tag"},
	})

	// Explicit empty values clear; absent values would have preserved.
	fav := f.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "A",
		Notes:  strPtr(""),
		Tags:   []string{},
	})

	if fav.Notes != "" {
		t.Errorf("explicit empty notes not cleared: %q", fav.Notes)
	}
	if len(fav.Tags) != 0 {
		t.Errorf("explicit empty tags not cleared: %v", fav.Tags)
	}
}

func TestAddNormalizesTags(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	fav := f.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "A",
		Tags:   []string{"Beach", " beach ", "SUNSET", "", "beach"},
	})

	want := []string{"beach", "sunset"}
	if !reflect.DeepEqual(fav.Tags, want) {
		t.Errorf("tags = %v, want %v", fav.Tags, want)
	}
}

func TestUpdateMissingDoesNotCreate(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	_, ok := f.Update(ctx, 42, domain.FavoriteUpdate{Notes: strPtr("hello")})
	if ok {
		t.Error("Update() on missing favorite reported success")
	}
	if f.Contains(ctx, 42) {
		t.Error("Update() on missing favorite created one")
	}
}

func TestUpdatePartial(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "A",
		Notes:  strPtr("original"),
		Tags:   []string{"a"},
	})

	fav, ok := f.Update(ctx, 1, domain.FavoriteUpdate{Tags: []string{"b", "c"}})
	if !ok {
		t.Fatal("Update() failed on existing favorite")
	}
	if fav.Notes != "original" {
		t.Errorf("Update() without notes changed them: %q", fav.Notes)
	}
	if !reflect.DeepEqual(fav.Tags, []string{"b", "c"}) {
		t.Errorf("Update() tags = %v, want [b c]", fav.Tags)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "A"})

	if !f.Remove(ctx, 1) {
		t.Error("Remove() existing = false, want true")
	}
	if f.Remove(ctx, 1) {
		t.Error("Remove() twice = true, want false")
	}
	if f.Remove(ctx, 99) {
		t.Error("Remove() never-existing = true, want false")
	}
	if got := len(f.List(ctx)); got != 0 {
		t.Errorf("List() after removes has %d entries, want 0", got)
	}
}

func TestToggle(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()
	in := domain.FavoriteInput{ItemID: 7, Title: "Seven"}

	if got := f.Toggle(ctx, in); !got {
		t.Error("Toggle() absent = false, want true (now favorited)")
	}
	if !f.Contains(ctx, 7) {
		t.Error("Toggle() did not add the favorite")
	}
	if got := f.Toggle(ctx, in); got {
		t.Error("Toggle() present = true, want false (no longer favorited)")
	}
	if f.Contains(ctx, 7) {
		t.Error("Toggle() did not remove the favorite")
	}
}

func TestAllTags(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "A", Tags: []string{"a", "b"}})
	f.Add(ctx, domain.FavoriteInput{ItemID: 2, Title: "B", Tags: []string{"b", "c"}})

	want := []string{"a", "b", "c"}
	if got := f.AllTags(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags() = %v, want %v", got, want)
	}
}

func TestByTag(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	f.Add(ctx, domain.FavoriteInput{ItemID: 2, Title: "B", Tags: []string{"beach"}})
	f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "A", Tags: []string{"beach", "sunset"}})
	f.Add(ctx, domain.FavoriteInput{ItemID: 3, Title: "C", Tags: []string{"city"}})

	got := f.ByTag(ctx, "Beach")
	if len(got) != 2 {
		t.Fatalf("ByTag() returned %d favorites, want 2", len(got))
	}
	if got[0].ItemID != 1 || got[1].ItemID != 2 {
		t.Errorf("ByTag() order = [%d %d], want [1 2]", got[0].ItemID, got[1].ItemID)
	}
}

func TestMutationsNotifySubscribers(t *testing.T) {
	f, _ := newTestFavorites()
	ctx := context.Background()

	calls := 0
	unsubscribe := f.Subscribe(func() { calls++ })
	defer unsubscribe()

	f.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "A"})
	f.Toggle(ctx, domain.FavoriteInput{ItemID: 2, Title: "B"})
	f.Remove(ctx, 1)

	if calls != 3 {
		t.Errorf("subscriber called %d times, want 3", calls)
	}

	// A remove that changes nothing must not notify.
	f.Remove(ctx, 99)
	if calls != 3 {
		t.Errorf("no-op remove notified subscribers: %d calls", calls)
	}
}
