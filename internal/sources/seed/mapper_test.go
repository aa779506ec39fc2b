package seed

import (
	"testing"
)

func TestMapBackupEmptyConfig(t *testing.T) {
	if _, err := NewMapper().MapBackup(Config{}); err == nil {
		t.Error("MapBackup() of empty config returned nil error")
	}
}

func TestMapBackupSkipsInvalidEntries(t *testing.T) {
	cfg := Config{
		Favorites: []FavoriteEntry{
			{ItemID: 1, Title: "Good"},
			{ItemID: 0, Title: "No ID"},
			{ItemID: 2, Title: ""},
		},
		Galleries: []GalleryEntry{
			{Name: "Good", Items: []GalleryItemEntry{
				{ItemID: 1, Title: "One"},
				{ItemID: 0, Title: "No ID"},
				{ItemID: 1, Title: "Dup"},
			}},
			{Name: ""},
		},
	}

	b, err := NewMapper().MapBackup(cfg)
	if err != nil {
		t.Fatalf("MapBackup() = %v", err)
	}

	if len(b.Favorites) != 1 {
		t.Errorf("favorites mapped = %d, want 1", len(b.Favorites))
	}
	if len(b.Galleries) != 1 {
		t.Fatalf("galleries mapped = %d, want 1", len(b.Galleries))
	}
	for _, gal := range b.Galleries {
		if len(gal.Items) != 1 {
			t.Errorf("gallery items = %d, want 1", len(gal.Items))
		}
	}
}

func TestMapBackupNormalizesTags(t *testing.T) {
	cfg := Config{
		Favorites: []FavoriteEntry{
			{ItemID: 1, Title: "One", Tags: []string{"Art", " art ", "DESIGN"}},
		},
	}

	b, err := NewMapper().MapBackup(cfg)
	if err != nil {
		t.Fatalf("MapBackup() = %v", err)
	}

	fav := b.Favorites["1"]
	if len(fav.Tags) != 2 || fav.Tags[0] != "art" || fav.Tags[1] != "design" {
		t.Errorf("tags = %v, want [art design]", fav.Tags)
	}
}

func TestMapBackupStableGalleryIDs(t *testing.T) {
	cfg := Config{Galleries: []GalleryEntry{{Name: "Living room"}}}

	a, err := NewMapper().MapBackup(cfg)
	if err != nil {
		t.Fatalf("MapBackup() = %v", err)
	}
	b, err := NewMapper().MapBackup(cfg)
	if err != nil {
		t.Fatalf("MapBackup() = %v", err)
	}

	for id := range a.Galleries {
		if _, ok := b.Galleries[id]; !ok {
			t.Errorf("gallery ID %q not stable across mappings", id)
		}
	}
}

func TestMapBackupPositionsAreContiguous(t *testing.T) {
	cfg := Config{
		Galleries: []GalleryEntry{
			{Name: "G", Items: []GalleryItemEntry{
				{ItemID: 10}, {ItemID: 0}, {ItemID: 20}, {ItemID: 10}, {ItemID: 30},
			}},
		},
	}

	b, err := NewMapper().MapBackup(cfg)
	if err != nil {
		t.Fatalf("MapBackup() = %v", err)
	}
	for _, gal := range b.Galleries {
		for i, it := range gal.Items {
			if it.Position != i {
				t.Errorf("item %d has position %d, want %d", it.ItemID, it.Position, i)
			}
		}
	}
}
