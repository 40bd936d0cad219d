package loader

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	defaultApplicationName string        = "imageloader"
	defaultFetchTimeout    time.Duration = 30 * time.Second
	defaultLoadWorkers     int           = 5

	configEnvPrefix string = "IMAGELOADER_"
)

// Config holds settings for an ImageLoader
type Config struct {
	// ApplicationName names the app directory used for the storage tier
	ApplicationName string `env:"APPLICATION_NAME" envDefault:"imageloader"`
	// CacheInMemory enables the in-memory cache tier
	CacheInMemory bool `env:"CACHE_IN_MEMORY" envDefault:"true"`
	// CacheInStorage enables the on-disk cache tier.
	// The tier is used only when the platform also has a filesystem.
	CacheInStorage bool `env:"CACHE_IN_STORAGE" envDefault:"true"`
	// FetchTimeout applies to the default network fetcher
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	// LoadWorkers is the number of concurrent loads used by LoadAll
	LoadWorkers int `env:"LOAD_WORKERS" envDefault:"5"`
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		ApplicationName: defaultApplicationName,
		CacheInMemory:   true,
		CacheInStorage:  true,
		FetchTimeout:    defaultFetchTimeout,
		LoadWorkers:     defaultLoadWorkers,
	}
}

// NewConfigFromEnv creates a Config from IMAGELOADER_ environment variables,
// e.g. IMAGELOADER_CACHE_IN_STORAGE.
// A .env file in the working directory is loaded first if present.
func NewConfigFromEnv() (*Config, error) {
	logger := log.WithFields(log.Fields{
		"package":  "loader",
		"function": "NewConfigFromEnv",
	})

	err := godotenv.Load()
	if err != nil {
		logger.Debugf(".env file not found or cannot be loaded: %v", err)
	}

	config, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: configEnvPrefix,
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to parse config from environment: %w", err)
	}

	return &config, nil
}
