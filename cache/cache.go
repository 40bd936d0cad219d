package cache

import (
	"image"
	"time"
)

// ImageCacheEntry is a single cached image
type ImageCacheEntry interface {
	GetKey() string
	GetCreationTime() time.Time

	GetImage() (image.Image, error)
}

// ImageCache is an image cache management object.
// Entries are kept until they are deleted explicitly, there is no eviction.
type ImageCache interface {
	Release()

	GetTotalEntries() int
	GetEntryKeys() []string

	DeleteAllEntries()

	CreateEntry(key string, img image.Image) (ImageCacheEntry, error)
	HasEntry(key string) bool
	GetEntry(key string) ImageCacheEntry
	DeleteEntry(key string)
}
