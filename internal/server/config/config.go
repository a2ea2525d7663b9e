// Package config handles configuration for the server component,
// including defaults, .env and environment overlay, JSON overlay, and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/cryptox"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
)

// Config holds runtime settings for the task manager server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing bearer tokens (HS256). Required.
//   - BcryptCost: work factor for password hashes.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - CORSOrigins: allowed origins for browser clients.
//   - Logger: logging backend, "slog" or "zap".
type Config struct {
	EndpointAddrHTTP string
	DatabaseDSN      string
	SecretKey        string
	BcryptCost       int
	ShutdownTimeout  time.Duration
	CORSOrigins      []string
	Logger           string
}

// LoadDefaults populates Config with development defaults. DatabaseDSN and
// SecretKey have none and must be supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.BcryptCost = cryptox.DefaultCost
	c.ShutdownTimeout = 10 * time.Second
	c.CORSOrigins = []string{"*"}
	c.Logger = logging.BackendSlog
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (and .env), an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is not set (JWT_SECRET or -s)")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is not set (DATABASE_DSN or -d)")
	}
	if err := cryptox.ValidateCost(c.BcryptCost); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	switch c.Logger {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("unknown logger %q", c.Logger)
	}
	return nil
}
