package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/travel-report-go/internal/report"
)

// Config holds application configuration
type Config struct {
	Port        string
	DBDriver    string // sqlite or pgx
	DBPath      string
	DatabaseURL string
	JWTSecret   string // empty disables auth

	GeocoderURL       string // empty uses the offline geocoder
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	GeocoderCacheSize int
	GeocoderCacheTTL  time.Duration

	RateLimitPerMin int
	ThresholdsFile  string
	Thresholds      report.Thresholds
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads configuration from the environment, after loading .env if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", ":8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBPath:            getEnv("DB_PATH", "./data/samples.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		GeocoderURL:       os.Getenv("GEOCODER_URL"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "travel-report-go"),
		ThresholdsFile:    os.Getenv("THRESHOLDS_FILE"),
	}

	timeoutMs, err := getEnvInt("GEOCODER_TIMEOUT_MS", 5000)
	if err != nil {
		return nil, err
	}
	cfg.GeocoderTimeout = time.Duration(timeoutMs) * time.Millisecond

	if cfg.GeocoderCacheSize, err = getEnvInt("GEOCODER_CACHE_SIZE", 10_000); err != nil {
		return nil, err
	}

	ttlMin, err := getEnvInt("GEOCODER_CACHE_TTL_MIN", 24*60)
	if err != nil {
		return nil, err
	}
	cfg.GeocoderCacheTTL = time.Duration(ttlMin) * time.Minute

	if cfg.RateLimitPerMin, err = getEnvInt("RATE_LIMIT_PER_MIN", 60); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "pgx":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=pgx")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	cfg.Thresholds = report.DefaultThresholds()
	if cfg.ThresholdsFile != "" {
		if cfg.Thresholds, err = LoadThresholds(cfg.ThresholdsFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return n, nil
}
