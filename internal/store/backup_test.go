package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := New(kv.NewMemory(), logger.NewNop())

	src.Favorites.Add(ctx, domain.FavoriteInput{
		ItemID: 1,
		Title:  "One",
		Notes:  strPtr("keep"),
		Tags:   []string{"a", "b"},
	})
	gal := src.Galleries.Create(ctx, domain.GalleryInput{Name: "Trips"})
	src.Galleries.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 1, Title: "One"})
	src.Galleries.AddItem(ctx, gal.ID, domain.GalleryItemInput{ItemID: 2, Title: "Two"})

	backup := src.Export(ctx)

	dst := New(kv.NewMemory(), logger.NewNop())
	dst.Import(ctx, backup)

	if !reflect.DeepEqual(dst.Favorites.List(ctx), src.Favorites.List(ctx)) {
		t.Error("imported favorites differ from exported ones")
	}
	if !reflect.DeepEqual(dst.Galleries.List(ctx), src.Galleries.List(ctx)) {
		t.Error("imported galleries differ from exported ones")
	}
}

func TestImportOverwritesOnConflict(t *testing.T) {
	ctx := context.Background()
	st := New(kv.NewMemory(), logger.NewNop())

	st.Favorites.Add(ctx, domain.FavoriteInput{ItemID: 1, Title: "Local", Notes: strPtr("local notes")})
	st.Favorites.Add(ctx, domain.FavoriteInput{ItemID: 2, Title: "Untouched"})

	st.Import(ctx, Backup{
		FavoritesVersion: FavoritesVersion,
		Favorites: map[string]domain.Favorite{
			FavoriteKey(1): {ItemID: 1, Title: "Imported", Notes: "imported notes"},
			FavoriteKey(3): {ItemID: 3, Title: "New"},
		},
	})

	all := st.Favorites.List(ctx)
	if len(all) != 3 {
		t.Fatalf("after import, %d favorites, want 3", len(all))
	}
	if got := all[FavoriteKey(1)].Title; got != "Imported" {
		t.Errorf("conflicting key not overwritten: title = %q", got)
	}
	if got := all[FavoriteKey(2)].Title; got != "Untouched" {
		t.Errorf("unrelated key modified: title = %q", got)
	}
}

func TestImportPartialBackup(t *testing.T) {
	ctx := context.Background()
	st := New(kv.NewMemory(), logger.NewNop())

	gal := st.Galleries.Create(ctx, domain.GalleryInput{Name: "Keep"})

	// A favorites-only backup must leave galleries alone.
	st.Import(ctx, Backup{
		Favorites: map[string]domain.Favorite{
			FavoriteKey(1): {ItemID: 1, Title: "One"},
		},
	})

	if _, ok := st.Galleries.Get(ctx, gal.ID); !ok {
		t.Error("partial import dropped an existing gallery")
	}
	if !st.Favorites.Contains(ctx, 1) {
		t.Error("partial import did not add the favorite")
	}
}
