package fetch

import (
	"context"
	"net/http"
	"sync"

	"github.com/drawgrid/imageloader-common/utils"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
)

// DummyFetcher implements Fetcher interface with canned response data
// implements interfaces defined in interface.go
type DummyFetcher struct {
	id            string
	dummyResults  map[string]*FetchResult
	dummyFailures map[string]error

	fetchCounts     map[string]int
	totalFetchCount int
	mutex           sync.Mutex
}

// NewDummyFetcher creates a Fetcher serving canned response data.
// URLs without a canned result respond with status 404.
func NewDummyFetcher() *DummyFetcher {
	logger := log.WithFields(log.Fields{
		"package":  "fetch",
		"function": "NewDummyFetcher",
	})

	defer utils.StackTraceFromPanic(logger)

	return &DummyFetcher{
		id:            xid.New().String(),
		dummyResults:  map[string]*FetchResult{},
		dummyFailures: map[string]error{},
		fetchCounts:   map[string]int{},
	}
}

// GetID returns fetcher id
func (fetcher *DummyFetcher) GetID() string {
	return fetcher.id
}

// Release releases resources
func (fetcher *DummyFetcher) Release() {
}

// AddDummyResult adds a canned response for the given url
func (fetcher *DummyFetcher) AddDummyResult(url string, statusCode int, body []byte) {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	fetcher.dummyResults[url] = &FetchResult{
		StatusCode: statusCode,
		Body:       body,
	}
}

// AddDummyFailure adds a transport failure for the given url
func (fetcher *DummyFetcher) AddDummyFailure(url string, failure error) {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	fetcher.dummyFailures[url] = failure
}

// GetFetchCount returns the number of fetches made for the given url
func (fetcher *DummyFetcher) GetFetchCount(url string) int {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	return fetcher.fetchCounts[url]
}

// GetTotalFetchCount returns the total number of fetches made
func (fetcher *DummyFetcher) GetTotalFetchCount() int {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	return fetcher.totalFetchCount
}

// Fetch returns the canned response for the given url
func (fetcher *DummyFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*FetchResult, error) {
	logger := log.WithFields(log.Fields{
		"package":  "fetch",
		"struct":   "DummyFetcher",
		"function": "Fetch",
	})

	defer utils.StackTraceFromPanic(logger)

	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	fetcher.fetchCounts[url]++
	fetcher.totalFetchCount++

	logger.Debugf("dummy fetcher %s fetching url %s", fetcher.id, url)

	if failure, ok := fetcher.dummyFailures[url]; ok {
		return nil, failure
	}

	if result, ok := fetcher.dummyResults[url]; ok {
		return &FetchResult{
			StatusCode: result.StatusCode,
			Body:       result.Body,
		}, nil
	}

	return &FetchResult{
		StatusCode: http.StatusNotFound,
		Body:       []byte{},
	}, nil
}
