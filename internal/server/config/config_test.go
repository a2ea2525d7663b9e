package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, 8, c.BcryptCost)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, "slog", c.Logger)
}

func TestLoadConfig_AllSources(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	clearEnv(t)
	envFile = writeTempFile(t, ".env", "LOGGER=zap\nBCRYPT_COST=9\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DSN", "postgres://env")

	jsonPath := writeTempFile(t, "cfg.json", `{"database_dsn":"postgres://json","shutdown_timeout":"3s"}`)
	os.Args = []string{"server", "-c", jsonPath, "-a", ":8080"}

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, 9, c.BcryptCost)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "zap", c.Logger)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "k"
		c.DatabaseDSN = "postgres://x"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "no secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "secret key"},
		{name: "no dsn", mutate: func(c *Config) { c.DatabaseDSN = "" }, wantErr: "database DSN"},
		{name: "bad cost", mutate: func(c *Config) { c.BcryptCost = 99 }, wantErr: "bcrypt cost"},
		{name: "bad timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: "shutdown timeout"},
		{name: "bad logger", mutate: func(c *Config) { c.Logger = "logrus" }, wantErr: "unknown logger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
