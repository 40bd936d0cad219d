package loader

import (
	"context"
	"image"
	"net/http"
	"sync"

	"github.com/drawgrid/imageloader-common/cache"
	"github.com/drawgrid/imageloader-common/fetch"
	"github.com/drawgrid/imageloader-common/imaging"
	"github.com/drawgrid/imageloader-common/platform"
	"github.com/drawgrid/imageloader-common/report"
	"github.com/drawgrid/imageloader-common/utils"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
	"github.com/tunabay/go-infounit"
	"golang.org/x/xerrors"
)

// ImageLoader loads images by URL through a two tier cache.
// Repeated loads of the same URL are served from the in-memory tier, then
// from the on-disk tier, before falling back to a network fetch.
type ImageLoader struct {
	id     string
	config *Config

	fetcher      fetch.Fetcher
	codec        imaging.Codec
	hostPlatform platform.Platform
	reportClient report.CacheReportClient

	ownsFetcher  bool
	ownsPlatform bool

	memoryCache    cache.ImageCache // nil when the memory tier is off
	storageCache   cache.ImageCache // nil when the storage tier is off
	storageEnabled bool

	storageWaiter sync.WaitGroup

	status      Status
	statusMutex sync.Mutex
}

// NewImageLoader creates a new ImageLoader.
// fetcher, codec, hostPlatform and reportClient can be nil. A nil fetcher,
// codec or platform is replaced with the default implementation, a nil
// reportClient turns reporting off. Whether the storage tier is used is
// decided here once, it requires both config.CacheInStorage and a platform
// with a filesystem.
func NewImageLoader(config *Config, fetcher fetch.Fetcher, codec imaging.Codec, hostPlatform platform.Platform, reportClient report.CacheReportClient) (*ImageLoader, error) {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"function": "NewImageLoader",
	})

	defer utils.StackTraceFromPanic(logger)

	if config == nil {
		config = NewConfig()
	}

	if codec == nil {
		codec = imaging.NewPNGCodec()
	}

	ownsFetcher := false
	if fetcher == nil {
		fetcher = fetch.NewHTTPFetcher(&http.Client{
			Timeout: config.FetchTimeout,
		})
		ownsFetcher = true
	}

	ownsPlatform := false
	if hostPlatform == nil {
		osPlatform, err := platform.NewOSPlatform(config.ApplicationName)
		if err != nil {
			return nil, xerrors.Errorf("failed to create os platform: %w", err)
		}
		hostPlatform = osPlatform
		ownsPlatform = true
	}

	imageLoader := &ImageLoader{
		id:     xid.New().String(),
		config: config,

		fetcher:      fetcher,
		codec:        codec,
		hostPlatform: hostPlatform,
		reportClient: reportClient,

		ownsFetcher:  ownsFetcher,
		ownsPlatform: ownsPlatform,
	}

	if config.CacheInMemory {
		imageLoader.memoryCache = cache.NewMemoryCache()
	}

	if config.CacheInStorage && hostPlatform.HasFilesystem() {
		storageCache, err := cache.NewDiskCache(hostPlatform, codec)
		if err != nil {
			// run without the storage tier
			logger.WithError(err).Warnf("failed to create disk cache for application %s", config.ApplicationName)
		} else {
			imageLoader.storageCache = storageCache
			imageLoader.storageEnabled = true
		}
	}

	logger.Debugf("created image loader %s, memory tier %t, storage tier %t", imageLoader.id, imageLoader.memoryCache != nil, imageLoader.storageEnabled)

	return imageLoader, nil
}

// GetID returns loader instance id
func (loader *ImageLoader) GetID() string {
	return loader.id
}

// GetConfig returns config
func (loader *ImageLoader) GetConfig() *Config {
	return loader.config
}

// Release releases all resources.
// It waits until pending storage writes complete.
func (loader *ImageLoader) Release() {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"struct":   "ImageLoader",
		"function": "Release",
	})

	defer utils.StackTraceFromPanic(logger)

	// wait until async cache writes complete
	loader.storageWaiter.Wait()

	if loader.memoryCache != nil {
		loader.memoryCache.Release()
	}

	if loader.storageCache != nil {
		loader.storageCache.Release()
	}

	if loader.ownsFetcher {
		loader.fetcher.Release()
	}

	if loader.ownsPlatform {
		loader.hostPlatform.Release()
	}
}

// Load returns the image for the given url.
// The memory tier is checked first, then the storage tier, then the image is
// fetched over the network. headers are sent with the network fetch.
// A fetched image is put into the memory tier before Load returns, the
// storage tier is written in the background.
func (loader *ImageLoader) Load(ctx context.Context, url string, headers map[string]string) (image.Image, error) {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"struct":   "ImageLoader",
		"function": "Load",
	})

	defer utils.StackTraceFromPanic(logger)

	if len(url) == 0 {
		return nil, xerrors.Errorf("url is not given")
	}

	key := utils.MakeCacheKey(url)

	loader.statusMutex.Lock()
	loader.status.NumRequested++
	loader.statusMutex.Unlock()

	// check the memory tier
	if loader.memoryCache != nil {
		if cacheEntry := loader.memoryCache.GetEntry(key); cacheEntry != nil {
			img, err := cacheEntry.GetImage()
			if err == nil {
				logger.Debugf("memory cache for key %s found - %s", key, url)

				loader.statusMutex.Lock()
				loader.status.NumMemoryHit++
				loader.statusMutex.Unlock()

				if loader.reportClient != nil {
					loader.reportClient.CacheHit(report.CacheTierMemory, url)
				}

				return img, nil
			}
		}

		if loader.reportClient != nil {
			loader.reportClient.CacheMiss(report.CacheTierMemory, url)
		}
	}

	// check the storage tier
	if loader.storageEnabled {
		if cacheEntry := loader.storageCache.GetEntry(key); cacheEntry != nil {
			img, err := cacheEntry.GetImage()
			if err == nil {
				logger.Debugf("storage cache for key %s found - %s", key, url)

				loader.statusMutex.Lock()
				loader.status.NumStorageHit++
				loader.statusMutex.Unlock()

				if loader.reportClient != nil {
					loader.reportClient.CacheHit(report.CacheTierStorage, url)
				}

				if loader.memoryCache != nil {
					loader.memoryCache.CreateEntry(key, img)
				}

				return img, nil
			}

			// an unusable cache file is a miss
			logger.WithError(err).Debugf("failed to load cache file for key %s - %s", key, url)
		}

		if loader.reportClient != nil {
			loader.reportClient.CacheMiss(report.CacheTierStorage, url)
		}
	}

	// fetch from remote
	logger.Debugf("cache for key %s not found - fetching %s", key, url)

	result, err := loader.fetcher.Fetch(ctx, url, headers)
	if err != nil {
		loader.statusMutex.Lock()
		loader.status.NumFetchFailed++
		loader.statusMutex.Unlock()

		if loader.reportClient != nil {
			loader.reportClient.Fetch(url, 0, 0)
		}

		return nil, xerrors.Errorf("failed to fetch url %s: %w", url, err)
	}

	loader.statusMutex.Lock()
	loader.status.NumFetched++
	loader.status.FetchedSize += infounit.ByteCount(len(result.Body))
	loader.statusMutex.Unlock()

	if loader.reportClient != nil {
		loader.reportClient.Fetch(url, result.StatusCode, int64(len(result.Body)))
	}

	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusBadRequest {
		loader.statusMutex.Lock()
		loader.status.NumFetchFailed++
		loader.statusMutex.Unlock()

		return nil, xerrors.Errorf("failed to load image: %w", fetch.NewBadStatusError(url, result.StatusCode))
	}

	img, err := loader.codec.DecodeImage(result.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode image from url %s: %w", url, err)
	}

	if loader.memoryCache != nil {
		loader.memoryCache.CreateEntry(key, img)
	}

	if loader.storageEnabled {
		loader.startStorageWrite(key, url, img)
	}

	return img, nil
}

// startStorageWrite writes the image to the storage tier in the background.
// The caller does not wait for the write, Release does.
func (loader *ImageLoader) startStorageWrite(key string, url string, img image.Image) {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"struct":   "ImageLoader",
		"function": "startStorageWrite",
	})

	loader.storageWaiter.Add(1)

	go func(l *ImageLoader) {
		defer utils.StackTraceFromPanic(logger)
		defer l.storageWaiter.Done()

		cacheEntry, err := l.storageCache.CreateEntry(key, img)
		if err != nil {
			// just log
			logger.WithError(err).Errorf("failed to write cache file for key %s - %s", key, url)

			l.statusMutex.Lock()
			l.status.NumStoreWriteFailed++
			l.statusMutex.Unlock()

			if l.reportClient != nil {
				l.reportClient.StoreWrite(url, 0, false)
			}
			return
		}

		size := int64(0)
		if diskEntry, ok := cacheEntry.(*cache.DiskCacheEntry); ok {
			size = diskEntry.GetSize()
		}

		l.statusMutex.Lock()
		l.status.NumStoreWritten++
		l.status.StoredSize += infounit.ByteCount(size)
		l.statusMutex.Unlock()

		if l.reportClient != nil {
			l.reportClient.StoreWrite(url, size, true)
		}

		logger.Debugf("wrote cache file for key %s - %s", key, url)
	}(loader)
}

// GetStatus returns the current loader status and statistics
func (loader *ImageLoader) GetStatus() *Status {
	loader.statusMutex.Lock()
	defer loader.statusMutex.Unlock()

	status := loader.status
	if loader.memoryCache != nil {
		status.MemoryEntries = loader.memoryCache.GetTotalEntries()
	}

	return &status
}
