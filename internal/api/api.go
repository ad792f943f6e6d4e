// Package api defines the JSON wire types and paths of the RetailMediaAI
// HTTP API, shared by the server handlers and the CLI client.
package api

import (
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

const (
	PathSendOTP        = "/api/auth/send-otp"
	PathSignIn         = "/api/auth/callback/credentials"
	PathWelcomeEmail   = "/api/send-welcome-email"
	PathForgotPassword = "/api/forgot-password"
	PathWeeklyReport   = "/api/cron/weekly-report"
	PathExportCreative = "/api/creatives/export"
	PathHealth         = "/healthz"
	PathMetrics        = "/metrics"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type MailResponse struct {
	Success   bool   `json:"success"`
	Simulated bool   `json:"simulated,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// OTPResponse carries the code back to the client, which verifies it.
type OTPResponse struct {
	Success   bool   `json:"success"`
	OTP       string `json:"otp"`
	Simulated bool   `json:"simulated,omitempty"`
}

type UsageData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type WeeklyReportRequest struct {
	Email     string     `json:"email"`
	UsageData *UsageData `json:"usageData,omitempty"`
}

type WeeklyReportResponse struct {
	Success   bool   `json:"success"`
	EmailSent bool   `json:"emailSent"`
	ChartURL  string `json:"chartUrl"`
	Message   string `json:"message,omitempty"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CredentialsResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      models.SessionUser `json:"user"`
}

type ExportRequest struct {
	Email    string          `json:"email"`
	Creative models.Creative `json:"creative"`
}

type ExportResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
