package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	t.Run("test Defaults", testConfigDefaults)
	t.Run("test FromEnv", testConfigFromEnv)
}

func testConfigDefaults(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, defaultApplicationName, config.ApplicationName)
	assert.True(t, config.CacheInMemory)
	assert.True(t, config.CacheInStorage)
	assert.Equal(t, defaultFetchTimeout, config.FetchTimeout)
	assert.Equal(t, defaultLoadWorkers, config.LoadWorkers)
}

func testConfigFromEnv(t *testing.T) {
	t.Setenv("IMAGELOADER_APPLICATION_NAME", "drawgrid")
	t.Setenv("IMAGELOADER_CACHE_IN_STORAGE", "false")
	t.Setenv("IMAGELOADER_FETCH_TIMEOUT", "5s")
	t.Setenv("IMAGELOADER_LOAD_WORKERS", "8")

	config, err := NewConfigFromEnv()
	assert.NoError(t, err)

	assert.Equal(t, "drawgrid", config.ApplicationName)
	assert.True(t, config.CacheInMemory)
	assert.False(t, config.CacheInStorage)
	assert.Equal(t, 5*time.Second, config.FetchTimeout)
	assert.Equal(t, 8, config.LoadWorkers)
}
