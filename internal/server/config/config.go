// Package config handles configuration for the server component,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the RetailMediaAI server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - BaseURL: public site URL used in email links.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Do not use test defaults in prod.
//   - SessionDuration: session token lifetime.
//   - S3*: object storage for creative exports; ExportURLValidity bounds the presigned links.
//   - SMTP*: outgoing mail. Without SMTPUser or SMTPPass mail is simulated.
type Config struct {
	ListenAddr        string
	BaseURL           string
	SecretKey         string
	SessionDuration   time.Duration
	ExportURLValidity time.Duration
	S3RootUser        string
	S3RootPassword    string
	S3Bucket          string
	S3Region          string
	S3BaseEndpoint    string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	LogLevel          string
	LogFormat         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BaseURL = "http://localhost:3000"
	c.SecretKey = "secretKey"
	c.SessionDuration = 30 * 24 * time.Hour
	c.ExportURLValidity = 15 * time.Minute
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "creatives"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SMTPHost = "smtp.gmail.com"
	c.SMTPPort = 587
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// MailConfigured reports whether SMTP credentials are present.
func (c *Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// LoadConfig builds a Config by applying defaults, then the environment
// (with .env loaded first), an optional JSON file and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
