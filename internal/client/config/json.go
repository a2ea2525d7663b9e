package config

import (
	"os"

	"github.com/dmitrijs2005/taskmanager/internal/flagx"
	"github.com/dmitrijs2005/taskmanager/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept "10s" or integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	SessionDB      string         `json:"session_db"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with the fields set in the file named by
// -c/-config. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
