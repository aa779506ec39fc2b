package domain

import "time"

// Favorite represents a single saved reference to an external content
// item, denormalized at save time so it stays renderable even if the
// item later disappears from the catalog.
//
// A Favorite is uniquely identified by its ItemID.
type Favorite struct {
	// ItemID is the stable external identifier of the content item.
	ItemID int64 `json:"item_id"`

	// Title is a copy of the item's display title at save time.
	Title string `json:"title"`

	// ThumbnailURL is optional and may be empty.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// Notes is free-form user-authored text.
	Notes string `json:"notes"`

	// Tags holds lowercase user-authored labels. Insertion order is
	// preserved for display but carries no identity.
	Tags []string `json:"tags"`

	// CreatedAt is set once and never changes.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutation. Always >= CreatedAt.
	UpdatedAt time.Time `json:"updated_at"`
}

// FavoriteInput carries the caller-supplied fields for Add and Toggle.
//
// Notes and Tags distinguish "absent" from "explicitly empty": a nil
// pointer/slice preserves the stored value on upsert, while a non-nil
// empty value clears it. Naive always-overwrite upserts would silently
// destroy user notes on re-favoriting.
type FavoriteInput struct {
	ItemID       int64    `json:"item_id"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// FavoriteUpdate carries a partial update. Nil fields are left untouched.
type FavoriteUpdate struct {
	Notes *string  `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}
