package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Prices  PricesConfig
	CORS    CORSConfig

	// DefaultTenantID is the tenant used for every request in local mode,
	// where the database file itself is the tenant boundary. Remote mode
	// resolves the tenant per request instead.
	DefaultTenantID string

	// FernetKey encrypts the remote DSN credential at rest. Required only
	// when a remote credential is stored through the system service.
	FernetKey string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Mode identity.Mode

	// Path is the SQLite database file, used in local mode.
	Path string

	// DatabaseURL is the PostgreSQL DSN, used in remote mode.
	DatabaseURL string
}

// PricesConfig configures the reference price feed and its cache
type PricesConfig struct {
	FeedURL string

	// RedisAddr enables the Redis-backed price cache when non-empty;
	// otherwise an in-process cache is used.
	RedisAddr     string
	RedisPassword string

	// RefreshSchedule is a cron expression for warming the price cache.
	// Empty disables the scheduler.
	RefreshSchedule string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	mode := identity.Mode(getEnv("STORAGE_MODE", string(identity.ModeLocal)))
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid STORAGE_MODE %q: must be local or remote", mode)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Storage: StorageConfig{
			Mode:        mode,
			Path:        getEnv("DB_PATH", "./data/crypto_tracker.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Prices: PricesConfig{
			FeedURL:         getEnv("PRICE_FEED_URL", "https://api.coingecko.com/api/v3"),
			RedisAddr:       os.Getenv("REDIS_ADDR"),
			RedisPassword:   os.Getenv("REDIS_PASSWORD"),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 5m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		DefaultTenantID: getEnv("DEFAULT_TENANT_ID", "local"),
		FernetKey:       os.Getenv("FERNET_KEY"),
	}

	if mode == identity.ModeRemote && config.Storage.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required in remote mode")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
