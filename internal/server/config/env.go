package config

import (
	"strconv"

	"github.com/dmitrijs2005/retailmedia/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotEnv is a test seam for godotenv.Load.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays mail and site settings from the environment. A .env
// file in the working directory is loaded first; variables already set in
// the process win over it.
//
//	SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM, NEXTAUTH_URL
//
// EMAIL_USER and EMAIL_PASS are accepted as fallbacks for the credentials.
func parseEnv(cfg *Config) {
	_ = loadDotEnv()

	cfg.SMTPHost = flagx.EnvOr("SMTP_HOST", cfg.SMTPHost)
	if port, err := strconv.Atoi(flagx.EnvOr("SMTP_PORT", "")); err == nil && port > 0 {
		cfg.SMTPPort = port
	}
	cfg.SMTPUser = flagx.EnvOr("SMTP_USER", flagx.EnvOr("EMAIL_USER", cfg.SMTPUser))
	cfg.SMTPPass = flagx.EnvOr("SMTP_PASS", flagx.EnvOr("EMAIL_PASS", cfg.SMTPPass))
	cfg.SMTPFrom = flagx.EnvOr("SMTP_FROM", cfg.SMTPFrom)
	cfg.BaseURL = flagx.EnvOr("NEXTAUTH_URL", cfg.BaseURL)
}
