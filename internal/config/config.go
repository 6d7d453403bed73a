package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Tryon    TryonConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type CatalogConfig struct {
	URL     string        // Base URL of the catalog API (e.g., http://localhost:8000)
	Timeout time.Duration // HTTP timeout for catalog fetches (default 15s)
}

type TryonConfig struct {
	AssetTimeout time.Duration // Bound on a single 3D asset load (default 10s)
	ReadyTimeout time.Duration // Bound on the AR engine ready signal (default 20s)
}

type StorageConfig struct {
	ModelsDir     string // Directory with uploaded .glb/.gltf files, served at /models
	StaticDir     string // Directory served at /static
	ThumbnailsDir string // Directory for thumbnails (under StaticDir)
	DataDir       string // Bundled default assets copied on seed
	MaxUploadSize int64  // Upload size cap in bytes (default 50MB)
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envDuration reads an environment variable and parses it as a duration.
// Returns the default value if the env var is unset, empty, or invalid.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

// envString reads an environment variable with a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8000),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Catalog: CatalogConfig{
			URL:     envString("CATALOG_URL", "http://localhost:8000"),
			Timeout: envDuration("CATALOG_TIMEOUT", 15*time.Second),
		},
		Tryon: TryonConfig{
			AssetTimeout: envDuration("TRYON_ASSET_TIMEOUT", 10*time.Second),
			ReadyTimeout: envDuration("TRYON_READY_TIMEOUT", 20*time.Second),
		},
		Storage: StorageConfig{
			ModelsDir:     envString("MODELS_DIR", "models"),
			StaticDir:     envString("STATIC_DIR", "static"),
			ThumbnailsDir: envString("THUMBNAILS_DIR", "static/thumbnails"),
			DataDir:       envString("DATA_DIR", "data/models"),
			MaxUploadSize: int64(envInt("MAX_UPLOAD_SIZE_MB", 50)) * 1024 * 1024,
		},
	}
}
