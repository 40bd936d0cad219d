package report

const (
	// CacheTierMemory is the tier name for the in-memory cache
	CacheTierMemory string = "memory"
	// CacheTierStorage is the tier name for the on-disk cache
	CacheTierStorage string = "storage"
)

// CacheReportClient is a client interface to report image loading stats
type CacheReportClient interface {
	Release()

	CacheHit(tier string, url string) error
	CacheMiss(tier string, url string) error
	Fetch(url string, statusCode int, size int64) error
	StoreWrite(url string, size int64, success bool) error
}
