package fetch

import (
	"context"
)

// FetchResult contains the response for a single fetch
type FetchResult struct {
	StatusCode int
	Body       []byte
}

type Fetcher interface {
	Release()

	// API
	Fetch(ctx context.Context, url string, headers map[string]string) (*FetchResult, error)
}
