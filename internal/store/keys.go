package store

import "strconv"

const (
	// FavoritesKey is the backing-store key for the favorites envelope.
	FavoritesKey = "curio:favorites"
	// GalleriesKey is the backing-store key for the galleries envelope.
	GalleriesKey = "curio:galleries"

	// FavoritesVersion is the current favorites schema generation.
	FavoritesVersion = 1
	// GalleriesVersion is the current galleries schema generation.
	GalleriesVersion = 1
)

// FavoriteKey returns the envelope mapping key for an item ID. JSON
// object keys are strings, so the numeric ID is stored in decimal form.
func FavoriteKey(itemID int64) string {
	return strconv.FormatInt(itemID, 10)
}
