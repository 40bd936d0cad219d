package loader

import (
	"fmt"

	"github.com/tunabay/go-infounit"
)

// Status represents loader statistics.
type Status struct {
	NumRequested        uint64             // total number of images requested.
	NumMemoryHit        uint64             // total number of memory cache hits.
	NumStorageHit       uint64             // total number of storage cache hits.
	NumFetched          uint64             // total number of network fetches.
	NumFetchFailed      uint64             // total number of fetches without a usable response.
	NumStoreWritten     uint64             // total number of cache files written.
	NumStoreWriteFailed uint64             // total number of failed cache file writes.
	FetchedSize         infounit.ByteCount // total size of fetched response bodies.
	StoredSize          infounit.ByteCount // total size of written cache files.
	MemoryEntries       int                // number of entries currently in the memory cache.
}

// String returns the string representation of Status.
func (status Status) String() string {
	return fmt.Sprintf(
		"req=%d, mem=%d, disk=%d, fetch=%d, fetchfail=%d, store=%d, storefail=%d, fetched=%.1S, stored=%.1S, entries=%d",
		status.NumRequested,
		status.NumMemoryHit,
		status.NumStorageHit,
		status.NumFetched,
		status.NumFetchFailed,
		status.NumStoreWritten,
		status.NumStoreWriteFailed,
		status.FetchedSize,
		status.StoredSize,
		status.MemoryEntries,
	)
}
