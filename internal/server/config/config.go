// Package config handles configuration for the server component,
// including defaults, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the shastore server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - MongoURI: MongoDB connection string.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenTTL: lifetime of issued access tokens.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	Addr            string
	MongoURI        string
	SecretKey       string
	AccessTokenTTL  time.Duration
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.MongoURI = "mongodb://localhost:27017/"
	c.SecretKey = "dev-secret-do-not-use"
	c.AccessTokenTTL = 30 * time.Minute
	c.ShutdownTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
