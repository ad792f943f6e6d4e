package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDotEnv(t *testing.T) {
	t.Helper()
	orig := loadDotEnv
	loadDotEnv = func() error { return nil }
	t.Cleanup(func() { loadDotEnv = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "http://localhost:3000", c.BaseURL)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 30*24*time.Hour, c.SessionDuration)
	assert.Equal(t, 15*time.Minute, c.ExportURLValidity)
	assert.Equal(t, "creatives", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "smtp.gmail.com", c.SMTPHost)
	assert.Equal(t, 587, c.SMTPPort)
	assert.False(t, c.MailConfigured())
}

func TestLoadConfig_Precedence(t *testing.T) {
	noDotEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("SMTP_USER", "env-user")
	t.Setenv("SMTP_PASS", "env-pass")
	t.Setenv("NEXTAUTH_URL", "https://env.example")

	path := writeTempJSON(t, "", "", map[string]any{
		"base_url":    "https://json.example",
		"listen_addr": ":9000",
	})
	os.Args = []string{"testbin", "-c", path, "-a", ":7000"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, ":7000", c.ListenAddr, "flags win")
	assert.Equal(t, "https://json.example", c.BaseURL, "json wins over env")
	assert.Equal(t, "env-user", c.SMTPUser)
	assert.True(t, c.MailConfigured())
}

func TestParseEnv(t *testing.T) {
	noDotEnv(t)

	t.Setenv("SMTP_HOST", "mail.example")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "")
	t.Setenv("EMAIL_USER", "fallback")
	t.Setenv("SMTP_PASS", "p")
	t.Setenv("SMTP_FROM", "no-reply@retailmedia.ai")
	t.Setenv("NEXTAUTH_URL", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "mail.example", c.SMTPHost)
	assert.Equal(t, 2525, c.SMTPPort)
	assert.Equal(t, "fallback", c.SMTPUser)
	assert.Equal(t, "p", c.SMTPPass)
	assert.Equal(t, "no-reply@retailmedia.ai", c.SMTPFrom)
	assert.Equal(t, "http://localhost:3000", c.BaseURL)
}

func TestParseEnv_BadPortKeepsDefault(t *testing.T) {
	noDotEnv(t)
	t.Setenv("SMTP_PORT", "abc")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 587, c.SMTPPort)
}
