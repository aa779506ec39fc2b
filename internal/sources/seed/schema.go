package seed

// FavoriteEntry is a single favorite in the seed YAML.
type FavoriteEntry struct {
	ItemID       int64    `yaml:"item_id"`
	Title        string   `yaml:"title"`
	ThumbnailURL string   `yaml:"thumbnail_url"`
	Notes        string   `yaml:"notes"`
	Tags         []string `yaml:"tags"`
}

// GalleryEntry is a single gallery in the seed YAML. Items are listed in
// display order.
type GalleryEntry struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Items       []GalleryItemEntry `yaml:"items"`
}

// GalleryItemEntry is one item of a seeded gallery.
type GalleryItemEntry struct {
	ItemID       int64  `yaml:"item_id"`
	Title        string `yaml:"title"`
	ThumbnailURL string `yaml:"thumbnail_url"`
}

// Config is the root structure of seed.yaml.
type Config struct {
	Favorites []FavoriteEntry `yaml:"favorites"`
	Galleries []GalleryEntry  `yaml:"galleries"`
}
