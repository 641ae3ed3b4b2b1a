package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables recognized by the server:
//
//	MONGO_URI              MongoDB connection string
//	SHASTORE_ADDR          HTTP bind address (e.g. ":8000")
//	SHASTORE_SECRET        JWT signing secret
//	SHASTORE_TOKEN_TTL     access token lifetime in minutes
func parseEnv(cfg *Config) {
	cfg.MongoURI = getEnvDefault("MONGO_URI", cfg.MongoURI)
	cfg.Addr = getEnvDefault("SHASTORE_ADDR", cfg.Addr)
	cfg.SecretKey = getEnvDefault("SHASTORE_SECRET", cfg.SecretKey)

	if v := os.Getenv("SHASTORE_TOKEN_TTL"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
		}
	}
}

// getEnvDefault returns the value of the environment variable or def when
// the variable is unset or empty.
func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
