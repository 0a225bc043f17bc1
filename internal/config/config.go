// Package config loads the immutable application configuration from
// environment variables. A .env file in the working directory is read
// first when present, so local development does not need exported vars.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MediaPolicy selects which media types the resolver keeps.
type MediaPolicy string

const (
	// MediaPolicyImages keeps images only.
	MediaPolicyImages MediaPolicy = "images"
	// MediaPolicyAll keeps images and videos, with MIME inference for
	// playback.
	MediaPolicyAll MediaPolicy = "all"
)

// Config holds the application configuration. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	// Feed
	FeedCSVURL   string
	FetchTimeout time.Duration
	FetchMaxSize int64

	// Object storage
	StorageURL     string
	StorageBucket  string
	StorageAnonKey string
	MediaListLimit int

	// Media resolution
	MediaPolicy          MediaPolicy
	ResolveMaxConcurrent int

	// Catalog
	RefreshInterval time.Duration // 0 disables periodic refresh

	// Contact
	ContactPhone string

	// Server
	ServerPort string
	BaseURL    string

	// CORS
	CORSAllowedOrigin string

	// Rate limit (requests per minute per client IP)
	RateLimitGeneral int
	RateLimitRefresh int
}

// Load reads the configuration from the environment. Required variables
// that are unset are collected and reported in a single error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.FeedCSVURL = os.Getenv("FEED_CSV_URL")
	if cfg.FeedCSVURL == "" {
		missing = append(missing, "FEED_CSV_URL")
	}

	cfg.StorageURL = os.Getenv("STORAGE_URL")
	if cfg.StorageURL == "" {
		missing = append(missing, "STORAGE_URL")
	}

	cfg.StorageBucket = os.Getenv("STORAGE_BUCKET")
	if cfg.StorageBucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.StorageAnonKey = getEnvString("STORAGE_ANON_KEY", "")
	cfg.MediaListLimit = getEnvInt("MEDIA_LIST_LIMIT", 100)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.ResolveMaxConcurrent = getEnvInt("RESOLVE_MAX_CONCURRENT", 10)
	cfg.RefreshInterval = getEnvDuration("REFRESH_INTERVAL", 0)
	cfg.ContactPhone = getEnvString("CONTACT_PHONE", "")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitRefresh = getEnvInt("RATE_LIMIT_REFRESH", 5)

	policy := strings.ToLower(getEnvString("MEDIA_POLICY", string(MediaPolicyImages)))
	switch MediaPolicy(policy) {
	case MediaPolicyImages, MediaPolicyAll:
		cfg.MediaPolicy = MediaPolicy(policy)
	default:
		return nil, fmt.Errorf("invalid MEDIA_POLICY %q (allowed: images, all)", policy)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
