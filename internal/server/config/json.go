package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/retailmedia/internal/flagx"
	"github.com/dmitrijs2005/retailmedia/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds.
//
// Empty or zero fields leave the value already in Config.
type JsonConfig struct {
	ListenAddr        string         `json:"listen_addr"`
	BaseURL           string         `json:"base_url"`
	SecretKey         string         `json:"secret_key"`
	SessionDuration   timex.Duration `json:"session_duration"`
	ExportURLValidity timex.Duration `json:"export_url_validity"`
	S3RootUser        string         `json:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	SMTPHost          string         `json:"smtp_host"`
	SMTPPort          int            `json:"smtp_port"`
	SMTPUser          string         `json:"smtp_user"`
	SMTPPass          string         `json:"smtp_pass"`
	SMTPFrom          string         `json:"smtp_from"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag. Without the flag nothing is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	for _, f := range []struct {
		dst *string
		v   string
	}{
		{&config.ListenAddr, c.ListenAddr},
		{&config.BaseURL, c.BaseURL},
		{&config.SecretKey, c.SecretKey},
		{&config.S3RootUser, c.S3RootUser},
		{&config.S3RootPassword, c.S3RootPassword},
		{&config.S3Bucket, c.S3Bucket},
		{&config.S3Region, c.S3Region},
		{&config.S3BaseEndpoint, c.S3BaseEndpoint},
		{&config.SMTPHost, c.SMTPHost},
		{&config.SMTPUser, c.SMTPUser},
		{&config.SMTPPass, c.SMTPPass},
		{&config.SMTPFrom, c.SMTPFrom},
		{&config.LogLevel, c.LogLevel},
		{&config.LogFormat, c.LogFormat},
	} {
		if f.v != "" {
			*f.dst = f.v
		}
	}
	if c.SMTPPort > 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SessionDuration.Duration > 0 {
		config.SessionDuration = c.SessionDuration.Duration
	}
	if c.ExportURLValidity.Duration > 0 {
		config.ExportURLValidity = c.ExportURLValidity.Duration
	}
}
