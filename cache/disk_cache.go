package cache

import (
	"image"
	"os"
	"strings"
	"time"

	"github.com/drawgrid/imageloader-common/imaging"
	"github.com/drawgrid/imageloader-common/platform"
	"github.com/drawgrid/imageloader-common/utils"
	"golang.org/x/xerrors"
)

const (
	diskCacheTmpSuffix string = ".tmp"
)

// DiskCacheEntry implements ImageCacheEntry
type DiskCacheEntry struct {
	cache        *DiskCache
	key          string
	size         int64
	creationTime time.Time
	filePath     string
}

// GetKey returns key of the entry
func (entry *DiskCacheEntry) GetKey() string {
	return entry.key
}

// GetSize returns the file size of the entry
func (entry *DiskCacheEntry) GetSize() int64 {
	return entry.size
}

// GetCreationTime returns creation time of the entry
func (entry *DiskCacheEntry) GetCreationTime() time.Time {
	return entry.creationTime
}

// GetImage reads and decodes the image of the entry
func (entry *DiskCacheEntry) GetImage() (image.Image, error) {
	data, err := os.ReadFile(entry.filePath)
	if err != nil {
		return nil, xerrors.Errorf("failed to read cache file %s: %w", entry.filePath, err)
	}

	img, err := entry.cache.codec.DecodeImage(data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode cache file %s: %w", entry.filePath, err)
	}

	return img, nil
}

// DiskCache implements ImageCache.
// Each entry is stored as a file named by its key under the platform app
// directory. Files are not removed on Release, they serve later instances.
type DiskCache struct {
	platform platform.Platform
	codec    imaging.Codec
	rootPath string
}

// NewDiskCache creates a new DiskCache under the app directory of the platform
func NewDiskCache(hostPlatform platform.Platform, codec imaging.Codec) (ImageCache, error) {
	if hostPlatform == nil {
		return nil, xerrors.Errorf("platform is not given")
	}

	if codec == nil {
		return nil, xerrors.Errorf("codec is not given")
	}

	if !hostPlatform.HasFilesystem() {
		return nil, xerrors.Errorf("platform %s does not have a filesystem", hostPlatform.GetApplicationName())
	}

	// cache files live directly in the app directory, named by their key
	rootPath, err := hostPlatform.GetAppDirectory()
	if err != nil {
		return nil, xerrors.Errorf("failed to get app directory: %w", err)
	}

	err = os.MkdirAll(rootPath, 0777)
	if err != nil {
		return nil, xerrors.Errorf("failed to make dir %s: %w", rootPath, err)
	}

	return &DiskCache{
		platform: hostPlatform,
		codec:    codec,
		rootPath: rootPath,
	}, nil
}

// Release releases resources.
// Cache files are kept on disk for use by later instances.
func (store *DiskCache) Release() {
}

// GetRootPath returns root path of disk cache
func (store *DiskCache) GetRootPath() string {
	return store.rootPath
}

func (store *DiskCache) getEntryFilePath(key string) string {
	return utils.JoinPath(store.rootPath, key)
}

// GetTotalEntries returns total number of entries in cache
func (store *DiskCache) GetTotalEntries() int {
	return len(store.GetEntryKeys())
}

// GetEntryKeys returns all entry keys
func (store *DiskCache) GetEntryKeys() []string {
	keys := []string{}

	dirEntries, err := os.ReadDir(store.rootPath)
	if err != nil {
		return keys
	}

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}

		if strings.HasSuffix(dirEntry.Name(), diskCacheTmpSuffix) {
			// an unfinished write
			continue
		}

		keys = append(keys, dirEntry.Name())
	}
	return keys
}

// DeleteAllEntries deletes all entries
func (store *DiskCache) DeleteAllEntries() {
	for _, key := range store.GetEntryKeys() {
		store.DeleteEntry(key)
	}
}

// CreateEntry encodes the image and writes it to a file named by the key.
// The data is written to a temp file first, then renamed, so a reader never
// sees a partial file. Each writer gets its own temp file, concurrent writers
// for the same key do not interfere and the last rename wins.
func (store *DiskCache) CreateEntry(key string, img image.Image) (ImageCacheEntry, error) {
	data, err := store.codec.EncodeImage(img)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode image for key %s: %w", key, err)
	}

	filePath := store.getEntryFilePath(key)

	tmpFile, err := os.CreateTemp(store.rootPath, key+"-*"+diskCacheTmpSuffix)
	if err != nil {
		return nil, xerrors.Errorf("failed to create temp cache file for key %s: %w", key, err)
	}

	tmpPath := tmpFile.Name()

	_, err = tmpFile.Write(data)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return nil, xerrors.Errorf("failed to write cache file %s: %w", tmpPath, err)
	}

	err = tmpFile.Close()
	if err != nil {
		os.Remove(tmpPath)
		return nil, xerrors.Errorf("failed to close cache file %s: %w", tmpPath, err)
	}

	err = os.Rename(tmpPath, filePath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, xerrors.Errorf("failed to rename cache file %s: %w", tmpPath, err)
	}

	return &DiskCacheEntry{
		cache:        store,
		key:          key,
		size:         int64(len(data)),
		creationTime: time.Now(),
		filePath:     filePath,
	}, nil
}

// HasEntry checks if the entry for the given key is present
func (store *DiskCache) HasEntry(key string) bool {
	stat, err := os.Stat(store.getEntryFilePath(key))
	if err != nil {
		return false
	}

	return !stat.IsDir()
}

// GetEntry returns an entry with the given key, nil if there is no usable
// cache file
func (store *DiskCache) GetEntry(key string) ImageCacheEntry {
	filePath := store.getEntryFilePath(key)

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil
	}

	if stat.IsDir() {
		return nil
	}

	return &DiskCacheEntry{
		cache:        store,
		key:          key,
		size:         stat.Size(),
		creationTime: stat.ModTime(),
		filePath:     filePath,
	}
}

// DeleteEntry deletes an entry with the given key
func (store *DiskCache) DeleteEntry(key string) {
	os.Remove(store.getEntryFilePath(key))
}
