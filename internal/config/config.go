package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Prices    PriceConfig
	Scheduler SchedulerConfig
	API       APIConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PriceConfig holds market data cache configuration
type PriceConfig struct {
	CurrentTTL    time.Duration
	HistoricalTTL time.Duration
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	PriceWarmupSchedule string
}

// APIConfig holds API access configuration
type APIConfig struct {
	InternalKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/trade_risk.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Prices: PriceConfig{
			CurrentTTL:    getEnvDuration("PRICE_CACHE_TTL", 15*time.Minute),
			HistoricalTTL: getEnvDuration("HISTORICAL_PRICE_CACHE_TTL", 24*time.Hour),
		},
		Scheduler: SchedulerConfig{
			// Weekdays at 09:35 and 15:55, around the US market open and close.
			PriceWarmupSchedule: getEnv("PRICE_WARMUP_SCHEDULE", "35 9,15 * * 1-5"),
		},
		API: APIConfig{
			InternalKey: getEnv("INTERNAL_API_KEY", ""),
		},
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

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
