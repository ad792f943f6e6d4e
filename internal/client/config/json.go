package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/retailmedia/internal/flagx"
	"github.com/dmitrijs2005/retailmedia/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so "1m" and integer nanoseconds both work. Empty fields
// keep the value already in Config.
type JsonConfig struct {
	ServerURL         string         `json:"server_url"`
	Storage           string         `json:"storage"`
	DSN               string         `json:"dsn"`
	HeartbeatInterval timex.Duration `json:"heartbeat_interval"`
	LogLevel          string         `json:"log_level"`
	ExportDir         string         `json:"export_dir"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without either flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.ServerURL, jc.ServerURL)
	setIf(&cfg.Storage, jc.Storage)
	setIf(&cfg.DSN, jc.DSN)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.ExportDir, jc.ExportDir)
	if jc.HeartbeatInterval.Duration > 0 {
		cfg.HeartbeatInterval = jc.HeartbeatInterval.Duration
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
