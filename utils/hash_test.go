package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	t.Run("test Deterministic", testDeterministic)
	t.Run("test FilesystemSafe", testFilesystemSafe)
	t.Run("test DistinctURLs", testDistinctURLs)
}

func testDeterministic(t *testing.T) {
	testURL := "https://assets.drawgrid.example/sprites/tileset1.png"

	key1 := MakeCacheKey(testURL)
	key2 := MakeCacheKey(testURL)

	assert.Equal(t, key1, key2)
	assert.NotEmpty(t, key1)

	// pinned digest, must not change across releases since it names files on
	// users' disks
	assert.Equal(t, "cd2beadee77f0f9dd12619dec5125a1e18e0881e", MakeCacheKey("https://x/y.png"))
}

func testFilesystemSafe(t *testing.T) {
	testURLs := []string{
		"https://assets.drawgrid.example/sprites/tileset1.png",
		"https://assets.drawgrid.example/a/b/c/d.jpg?size=64&v=2",
		"http://127.0.0.1:8080/image%20with%20spaces.gif",
		"file:///../../etc/passwd",
		"",
	}

	for _, testURL := range testURLs {
		key := MakeCacheKey(testURL)

		assert.NotContains(t, key, "/")
		assert.NotContains(t, key, "\\")
		assert.NotContains(t, key, "..")
		assert.Equal(t, strings.ToLower(key), key)
		assert.Equal(t, 40, len(key))
	}
}

func testDistinctURLs(t *testing.T) {
	key1 := MakeCacheKey("https://assets.drawgrid.example/sprites/tileset1.png")
	key2 := MakeCacheKey("https://assets.drawgrid.example/sprites/tileset2.png")

	assert.NotEqual(t, key1, key2)
}
