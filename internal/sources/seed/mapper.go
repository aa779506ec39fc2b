package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/store"
)

// Mapper converts a seed config into a store backup ready for import.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// MapBackup builds a backup from the seed config. Seeded gallery IDs are
// derived from the gallery name, so re-importing the same seed file
// overwrites the seeded galleries instead of accumulating duplicates.
func (m *Mapper) MapBackup(cfg Config) (store.Backup, error) {
	if len(cfg.Favorites) == 0 && len(cfg.Galleries) == 0 {
		return store.Backup{}, fmt.Errorf("seed file contains no favorites or galleries")
	}

	now := time.Now()

	favorites := make(map[string]domain.Favorite, len(cfg.Favorites))
	for _, entry := range cfg.Favorites {
		if entry.ItemID == 0 || entry.Title == "" {
			continue
		}
		favorites[strconv.FormatInt(entry.ItemID, 10)] = domain.Favorite{
			ItemID:       entry.ItemID,
			Title:        entry.Title,
			ThumbnailURL: entry.ThumbnailURL,
			Notes:        entry.Notes,
			Tags:         store.NormalizeTags(entry.Tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	galleries := make(map[string]domain.Gallery, len(cfg.Galleries))
	for _, entry := range cfg.Galleries {
		if entry.Name == "" {
			continue
		}

		gal := domain.Gallery{
			ID:          seededGalleryID(entry.Name),
			Name:        entry.Name,
			Description: entry.Description,
			Items:       []domain.GalleryItem{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, item := range entry.Items {
			if item.ItemID == 0 || gal.ItemIndex(item.ItemID) >= 0 {
				continue
			}
			gal.Items = append(gal.Items, domain.GalleryItem{
				ItemID:       item.ItemID,
				Title:        item.Title,
				ThumbnailURL: item.ThumbnailURL,
				Position:     len(gal.Items),
				AddedAt:      now,
			})
		}
		galleries[gal.ID] = gal
	}

	return store.Backup{
		FavoritesVersion: store.FavoritesVersion,
		GalleriesVersion: store.GalleriesVersion,
		Favorites:        favorites,
		Galleries:        galleries,
	}, nil
}

// seededGalleryID derives a stable ID from the gallery name so the same
// seed entry always maps to the same gallery.
func seededGalleryID(name string) string {
	hash := sha256.Sum256([]byte("seed:" + name))
	return hex.EncodeToString(hash[:])[:16]
}
