package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/drawgrid/imageloader-common/utils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	defaultFetchTimeout time.Duration = 30 * time.Second
)

// HTTPFetcher implements Fetcher interface with net/http
// direct access to remote image servers
// implements interfaces defined in interface.go
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates Fetcher using HTTPFetcher.
// If httpClient is nil, a default client with a 30 second timeout is used.
func NewHTTPFetcher(httpClient *http.Client) Fetcher {
	logger := log.WithFields(log.Fields{
		"package":  "fetch",
		"function": "NewHTTPFetcher",
	})

	defer utils.StackTraceFromPanic(logger)

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultFetchTimeout,
		}
	}

	return &HTTPFetcher{
		httpClient: httpClient,
	}
}

// Release releases resources
func (fetcher *HTTPFetcher) Release() {
	logger := log.WithFields(log.Fields{
		"package":  "fetch",
		"struct":   "HTTPFetcher",
		"function": "Release",
	})

	defer utils.StackTraceFromPanic(logger)

	if fetcher.httpClient != nil {
		fetcher.httpClient.CloseIdleConnections()
		fetcher.httpClient = nil
	}
}

// Fetch downloads the data at the given url.
// The status code is returned as-is, callers decide what counts as a failure.
func (fetcher *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*FetchResult, error) {
	if fetcher.httpClient == nil {
		return nil, xerrors.Errorf("HTTPClient is nil")
	}

	logger := log.WithFields(log.Fields{
		"package":  "fetch",
		"struct":   "HTTPFetcher",
		"function": "Fetch",
	})

	defer utils.StackTraceFromPanic(logger)

	logger.Debugf("fetching url %s", url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to create a request for url %s: %w", url, err)
	}

	for headerName, headerValue := range headers {
		request.Header.Set(headerName, headerValue)
	}

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch url %s: %w", url, err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed to read response body for url %s: %w", url, err)
	}

	return &FetchResult{
		StatusCode: response.StatusCode,
		Body:       body,
	}, nil
}
