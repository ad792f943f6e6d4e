package client

import (
	"context"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

// Client is the server API as used by the account and report flows.
type Client interface {
	SendOTP(ctx context.Context, email, name string) (*api.OTPResponse, error)
	SendWelcomeEmail(ctx context.Context, email, name string) (*api.MailResponse, error)
	ForgotPassword(ctx context.Context, email string) (*api.MailResponse, error)
	SendWeeklyReport(ctx context.Context, email string, usage models.WeeklyUsage) (*api.WeeklyReportResponse, error)
	SignIn(ctx context.Context, email, password string) (*api.CredentialsResponse, error)
	ExportCreative(ctx context.Context, token, email string, c models.Creative) (*api.ExportResponse, error)
	Ping(ctx context.Context) error
}
