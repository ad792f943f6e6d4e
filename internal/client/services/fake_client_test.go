package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	mu sync.Mutex

	OTP          string
	OTPSimulated bool
	OTPErr       error

	WelcomeErr error
	ForgotErr  error

	ReportResp *api.WeeklyReportResponse
	ReportErr  error

	SignInErr error

	// recorded calls
	OTPEmails     []string
	WelcomeEmails []string
	WelcomeNames  []string
	ForgotEmails  []string
	ReportUsage   []models.WeeklyUsage
	SignInEmails  []string
}

func (f *fakeClient) SendOTP(_ context.Context, email, _ string) (*api.OTPResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OTPEmails = append(f.OTPEmails, email)
	if f.OTPErr != nil {
		return nil, f.OTPErr
	}
	return &api.OTPResponse{Success: true, OTP: f.OTP, Simulated: f.OTPSimulated}, nil
}

func (f *fakeClient) SendWelcomeEmail(_ context.Context, email, name string) (*api.MailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WelcomeEmails = append(f.WelcomeEmails, email)
	f.WelcomeNames = append(f.WelcomeNames, name)
	if f.WelcomeErr != nil {
		return nil, f.WelcomeErr
	}
	return &api.MailResponse{Success: true}, nil
}

func (f *fakeClient) ForgotPassword(_ context.Context, email string) (*api.MailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForgotEmails = append(f.ForgotEmails, email)
	if f.ForgotErr != nil {
		return nil, f.ForgotErr
	}
	return &api.MailResponse{Success: true}, nil
}

func (f *fakeClient) SendWeeklyReport(_ context.Context, _ string, usage models.WeeklyUsage) (*api.WeeklyReportResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReportUsage = append(f.ReportUsage, usage)
	if f.ReportErr != nil {
		return nil, f.ReportErr
	}
	if f.ReportResp != nil {
		return f.ReportResp, nil
	}
	return &api.WeeklyReportResponse{Success: true, EmailSent: true}, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, _ string) (*api.CredentialsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignInEmails = append(f.SignInEmails, email)
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	return &api.CredentialsResponse{Token: "tok-" + email, User: models.SessionUser{Email: email}}, nil
}

func (f *fakeClient) ExportCreative(context.Context, string, string, models.Creative) (*api.ExportResponse, error) {
	return &api.ExportResponse{}, nil
}

func (f *fakeClient) Ping(context.Context) error { return nil }
