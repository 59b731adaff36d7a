package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ScannerSecret    string        // Required: shared secret for the QR token cipher; fatal if absent
	ScannerAlgorithm string        // Optional: aes-ecb (default), aes-ecb-legacy, aes-gcm
	TokenMaxAge      time.Duration // Optional: reject tokens older than this; 0 disables expiry (default)

	SessionSecret string        // Required: HS256 secret for session tokens
	SessionIssuer string        // Optional: issuer claim (default: loyalty)
	SessionTTL    time.Duration // Optional: session lifetime (default: 12h)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./loyalty.db)
	PepperFile           string        // Optional: path to the password-hash pepper file (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		ScannerSecret:    os.Getenv("SCANNER_SECRET"),
		ScannerAlgorithm: getEnvOrDefault("SCANNER_ALGORITHM", "aes-ecb"),
		TokenMaxAge:      getEnvDurationOrDefault("SCANNER_TOKEN_MAX_AGE", 0),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionIssuer: getEnvOrDefault("SESSION_ISSUER", "loyalty"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),

		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "loyalty.db"),
		PepperFile:           getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
