package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Storage
	StorageDriver string // "memory" or "sqlite"
	SQLitePath    string
	SeedDemoData  bool

	// Network simulation (memory store only)
	SimMinDelay    time.Duration
	SimMaxDelay    time.Duration
	SimFailureRate float64

	// HTTP surface
	RateLimit        string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowOrigins []string
	StaticDir        string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("SQLITE_PATH", "data/bookkeeping.db")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("SIM_MIN_DELAY", "200ms")
	viper.SetDefault("SIM_MAX_DELAY", "600ms")
	viper.SetDefault("SIM_FAILURE_RATE", 0.05)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("STATIC_DIR", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StorageDriver = viper.GetString("STORAGE_DRIVER")
	switch cfg.StorageDriver {
	case "memory", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: must be \"memory\" or \"sqlite\"", cfg.StorageDriver)
	}

	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.SeedDemoData = viper.GetBool("SEED_DEMO_DATA")

	cfg.SimMinDelay = parseDurationOr("SIM_MIN_DELAY", 200*time.Millisecond)
	cfg.SimMaxDelay = parseDurationOr("SIM_MAX_DELAY", 600*time.Millisecond)
	if cfg.SimMaxDelay < cfg.SimMinDelay {
		cfg.SimMaxDelay = cfg.SimMinDelay
	}

	cfg.SimFailureRate = viper.GetFloat64("SIM_FAILURE_RATE")
	if cfg.SimFailureRate < 0 || cfg.SimFailureRate > 1 {
		return nil, fmt.Errorf("invalid SIM_FAILURE_RATE %v: must be within [0, 1]", cfg.SimFailureRate)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")
	cfg.StaticDir = viper.GetString("STATIC_DIR")

	return cfg, nil
}

// parseDurationOr reads a duration-formatted key, falling back to def when
// the value is missing or malformed.
func parseDurationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
