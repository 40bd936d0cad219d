package cache

import (
	"image"
	"sync"
	"time"
)

// MemoryCacheEntry defines an entry, implements ImageCacheEntry
type MemoryCacheEntry struct {
	key          string
	accessCount  int
	creationTime time.Time
	image        image.Image
	mutex        sync.Mutex
}

// NewMemoryCacheEntry creates a new MemoryCacheEntry
func NewMemoryCacheEntry(key string, img image.Image) *MemoryCacheEntry {
	return &MemoryCacheEntry{
		key:          key,
		accessCount:  0,
		creationTime: time.Now(),
		image:        img,
	}
}

// GetKey returns key of the entry
func (entry *MemoryCacheEntry) GetKey() string {
	return entry.key
}

// GetAccessCount returns access count of the entry
func (entry *MemoryCacheEntry) GetAccessCount() int {
	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	return entry.accessCount
}

// GetCreationTime returns creation time of the entry
func (entry *MemoryCacheEntry) GetCreationTime() time.Time {
	return entry.creationTime
}

// GetImage returns the image of the entry
func (entry *MemoryCacheEntry) GetImage() (image.Image, error) {
	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	entry.accessCount++
	return entry.image, nil
}

// MemoryCache implements ImageCache.
// Decoded images are held in a map without a size cap, entries live as long
// as the cache instance.
type MemoryCache struct {
	entryMap map[string]*MemoryCacheEntry
	mutex    sync.Mutex
}

// NewMemoryCache creates a new MemoryCache
func NewMemoryCache() ImageCache {
	return &MemoryCache{
		entryMap: map[string]*MemoryCacheEntry{},
	}
}

// Release releases all resources
func (store *MemoryCache) Release() {
	store.DeleteAllEntries()
}

// GetTotalEntries returns total number of entries in cache
func (store *MemoryCache) GetTotalEntries() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	return len(store.entryMap)
}

// GetEntryKeys returns all entry keys
func (store *MemoryCache) GetEntryKeys() []string {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	keys := []string{}
	for key := range store.entryMap {
		keys = append(keys, key)
	}
	return keys
}

// DeleteAllEntries deletes all entries
func (store *MemoryCache) DeleteAllEntries() {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	store.entryMap = map[string]*MemoryCacheEntry{}
}

// CreateEntry creates a new entry, overwriting an existing entry for the key
func (store *MemoryCache) CreateEntry(key string, img image.Image) (ImageCacheEntry, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entry := NewMemoryCacheEntry(key, img)
	store.entryMap[key] = entry

	return entry, nil
}

// HasEntry checks if the entry for the given key is present
func (store *MemoryCache) HasEntry(key string) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	_, ok := store.entryMap[key]
	return ok
}

// GetEntry returns an entry with the given key
func (store *MemoryCache) GetEntry(key string) ImageCacheEntry {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if entry, ok := store.entryMap[key]; ok {
		return entry
	}

	return nil
}

// DeleteEntry deletes an entry with the given key
func (store *MemoryCache) DeleteEntry(key string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	delete(store.entryMap, key)
}
