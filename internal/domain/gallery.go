package domain

import "time"

// GalleryItem is a reference to a content item placed inside one
// gallery. Items are per-gallery copies, not shared references: the same
// ItemID in two galleries is two independent GalleryItems.
type GalleryItem struct {
	ItemID       int64  `json:"item_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// Position is the zero-based rank among the gallery's items. The
	// set of positions is always exactly {0..len(items)-1}.
	Position int `json:"position"`

	// AddedAt is the time of insertion into this gallery.
	AddedAt time.Time `json:"added_at"`
}

// Gallery is a named, ordered, user-curated collection of content-item
// references. Item order is semantically meaningful display order.
type Gallery struct {
	// ID is an opaque generated identifier, never reused.
	ID string `json:"gallery_id"`

	// Name is expected to be non-empty; the boundary that accepts
	// untrusted input enforces that, not the repository.
	Name string `json:"name"`

	Description string `json:"description"`

	// Items holds at most one entry per ItemID, ordered by Position.
	Items []GalleryItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GalleryInput carries the fields for creating a gallery.
type GalleryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GalleryUpdate carries a partial update. Nil fields are left untouched.
type GalleryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GalleryItemInput carries the fields for adding an item to a gallery.
type GalleryItemInput struct {
	ItemID       int64  `json:"item_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ItemIndex returns the index of itemID in g.Items, or -1.
func (g *Gallery) ItemIndex(itemID int64) int {
	for i, it := range g.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}
