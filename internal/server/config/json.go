package config

import (
	"os"

	"github.com/dmitrijs2005/taskmanager/internal/flagx"
	"github.com/dmitrijs2005/taskmanager/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// use timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	BcryptCost       int            `json:"bcrypt_cost"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	CORSOrigins      []string       `json:"cors_origins"`
	Logger           string         `json:"logger"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets onto config. A missing or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.Logger != "" {
		config.Logger = c.Logger
	}
}
