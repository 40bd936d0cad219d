package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// MakeCacheKey returns a cache key string for the given image URL.
// The same URL always maps to the same key within a process and across
// restarts. The key is lowercase hex, safe to use both as a map key and as a
// file name.
func MakeCacheKey(url string) string {
	hash := sha1.New()
	hash.Write([]byte(url))
	hashBytes := hash.Sum(nil)
	return hex.EncodeToString(hashBytes)
}
