package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before the process environment is read. Variables that
// are already set win over the file.
var envFile = ".env"

// parseEnv overlays Config with environment variables:
//
//	ADDRESS           bind address
//	DATABASE_DSN      PostgreSQL DSN
//	JWT_SECRET        token signing secret
//	BCRYPT_COST       bcrypt work factor
//	SHUTDOWN_TIMEOUT  seconds, or a Go duration string
//	CORS_ORIGIN       comma-separated origins
//	LOGGER            slog | zap
//
// A missing .env file is ignored; an unreadable one or a malformed number
// panics, like the other loaders.
func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = n
	}
	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok {
		config.ShutdownTimeout = parseSeconds(v)
	}
	if v, ok := os.LookupEnv("CORS_ORIGIN"); ok {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("LOGGER"); ok {
		config.Logger = v
	}
}

// parseSeconds accepts a bare integer (seconds) or a duration string.
func parseSeconds(v string) time.Duration {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
