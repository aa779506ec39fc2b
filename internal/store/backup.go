package store

import (
	"context"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

// Store bundles both repositories over one backing store.
type Store struct {
	Favorites *Favorites
	Galleries *Galleries
}

// New creates both repositories. kvStore may be nil; the store then
// works in-memory-of-nothing: reads empty, writes skipped.
func New(kvStore kv.Store, log logger.Logger) *Store {
	return &Store{
		Favorites: NewFavorites(kvStore, log),
		Galleries: NewGalleries(kvStore, log),
	}
}

// Backup is the portable dump of both envelopes, the shape a future
// cross-device sync would exchange.
type Backup struct {
	FavoritesVersion int                        `json:"favorites_version"`
	GalleriesVersion int                        `json:"galleries_version"`
	Favorites        map[string]domain.Favorite `json:"favorites"`
	Galleries        map[string]domain.Gallery  `json:"galleries"`
}

// Export dumps the current state of both repositories.
func (s *Store) Export(ctx context.Context) Backup {
	return Backup{
		FavoritesVersion: FavoritesVersion,
		GalleriesVersion: GalleriesVersion,
		Favorites:        s.Favorites.List(ctx),
		Galleries:        s.Galleries.List(ctx),
	}
}

// Import merges a backup into the store: a shallow key-wise union where
// imported entries win on conflict. Nil sections are skipped, so a
// partial backup imports only what it carries. Both repositories persist
// and notify as usual.
func (s *Store) Import(ctx context.Context, b Backup) {
	s.Favorites.importAll(ctx, b.Favorites)
	s.Galleries.importAll(ctx, b.Galleries)
}
