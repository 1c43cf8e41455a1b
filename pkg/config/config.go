package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate provider
	FrankfurterHost string
	FrankfurterPort string
	FetchTimeout    time.Duration

	// Ingest schedule
	IngestCronSpec   string
	IngestTimeout    time.Duration
	RunIngestOnStart bool

	// Conversion cache
	RateCacheTTL         time.Duration
	RateCacheNegativeTTL time.Duration
	RateCacheGrace       time.Duration

	// API rate limiting
	RateLimitPerMinute int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("FRANKFURTER_HOST", "frankfurter")
	viper.SetDefault("FRANKFURTER_PORT", "8080")
	viper.SetDefault("FETCH_TIMEOUT", "10s")
	viper.SetDefault("INGEST_CRON", "0 6 * * *")
	viper.SetDefault("INGEST_TIMEOUT", "10m")
	viper.SetDefault("RUN_INGEST_ON_START", false)
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_CACHE_NEGATIVE_TTL", "30s")
	viper.SetDefault("RATE_CACHE_GRACE", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.FrankfurterHost = viper.GetString("FRANKFURTER_HOST")
	cfg.FrankfurterPort = viper.GetString("FRANKFURTER_PORT")
	cfg.FetchTimeout = durationOrDefault("FETCH_TIMEOUT", 10*time.Second)

	cfg.IngestCronSpec = viper.GetString("INGEST_CRON")
	cfg.IngestTimeout = durationOrDefault("INGEST_TIMEOUT", 10*time.Minute)
	cfg.RunIngestOnStart = viper.GetBool("RUN_INGEST_ON_START")

	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", time.Hour)
	cfg.RateCacheNegativeTTL = durationOrDefault("RATE_CACHE_NEGATIVE_TTL", 30*time.Second)
	cfg.RateCacheGrace = durationOrDefault("RATE_CACHE_GRACE", 10*time.Second)

	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
