package loader

import (
	"context"
	"sync"

	"github.com/drawgrid/imageloader-common/utils"
	log "github.com/sirupsen/logrus"
)

// LoadAll loads every url in the given list, filling the cache tiers.
// The urls to load are passed explicitly, the caller decides the set.
// URLs already cached are served from cache and not fetched again. Loads run
// on config.LoadWorkers goroutines. All urls are processed even when some
// fail, the first error is returned after the last load completes.
func (loader *ImageLoader) LoadAll(ctx context.Context, urls []string, headers map[string]string) error {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"struct":   "ImageLoader",
		"function": "LoadAll",
	})

	defer utils.StackTraceFromPanic(logger)

	if len(urls) == 0 {
		return nil
	}

	workers := loader.config.LoadWorkers
	if workers <= 0 {
		workers = defaultLoadWorkers
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	logger.Debugf("loading %d urls with %d workers", len(urls), workers)

	urlChan := make(chan string, len(urls))
	for _, url := range urls {
		urlChan <- url
	}
	close(urlChan)

	pendingErrors := []error{}
	pendingErrorsMutex := sync.Mutex{}

	workerWaiter := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		workerWaiter.Add(1)

		go func(l *ImageLoader) {
			defer utils.StackTraceFromPanic(logger)
			defer workerWaiter.Done()

			for url := range urlChan {
				_, err := l.Load(ctx, url, headers)
				if err != nil {
					logger.WithError(err).Errorf("failed to load url %s", url)

					pendingErrorsMutex.Lock()
					pendingErrors = append(pendingErrors, err)
					pendingErrorsMutex.Unlock()
				}
			}
		}(loader)
	}

	workerWaiter.Wait()

	if len(pendingErrors) > 0 {
		return pendingErrors[0]
	}

	return nil
}
