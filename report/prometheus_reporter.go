package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusReportClient reports image loading stats as prometheus metrics
type PrometheusReportClient struct {
	registerer prometheus.Registerer

	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	fetches      *prometheus.CounterVec
	fetchedBytes prometheus.Counter
	storeWrites  *prometheus.CounterVec
}

// NewPrometheusReportClient creates a new prometheus reporter.
// If registerer is nil, the default prometheus registerer is used.
func NewPrometheusReportClient(registerer prometheus.Registerer) CacheReportClient {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registerer)

	return &PrometheusReportClient{
		registerer: registerer,

		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imageloader_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"tier"}),

		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imageloader_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"tier"}),

		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imageloader_fetches_total",
			Help: "Total number of network fetches",
		}, []string{"status_class"}),

		fetchedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "imageloader_fetched_bytes_total",
			Help: "Total number of bytes fetched over the network",
		}),

		storeWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imageloader_store_writes_total",
			Help: "Total number of cache store write operations",
		}, []string{"result"}),
	}
}

// Release releases resources used
func (reporter *PrometheusReportClient) Release() {
}

// CacheHit reports a cache hit on the given tier
func (reporter *PrometheusReportClient) CacheHit(tier string, url string) error {
	reporter.cacheHits.WithLabelValues(tier).Inc()
	return nil
}

// CacheMiss reports a cache miss on the given tier
func (reporter *PrometheusReportClient) CacheMiss(tier string, url string) error {
	reporter.cacheMisses.WithLabelValues(tier).Inc()
	return nil
}

// Fetch reports a network fetch and the size of the response body
func (reporter *PrometheusReportClient) Fetch(url string, statusCode int, size int64) error {
	statusClass := "error"
	if statusCode > 0 {
		statusClass = fmt.Sprintf("%dxx", statusCode/100)
	}

	reporter.fetches.WithLabelValues(statusClass).Inc()

	if size > 0 {
		reporter.fetchedBytes.Add(float64(size))
	}
	return nil
}

// StoreWrite reports a cache store write and its outcome
func (reporter *PrometheusReportClient) StoreWrite(url string, size int64, success bool) error {
	result := "success"
	if !success {
		result = "failure"
	}

	reporter.storeWrites.WithLabelValues(result).Inc()
	return nil
}
