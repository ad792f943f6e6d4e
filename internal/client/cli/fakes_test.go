package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/client/services"
)

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// stubInputs answers getSimpleText prompts with texts in order and every
// password prompt with the next value of passwords.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(prompt string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			t.Fatalf("unexpected password prompt %q", prompt)
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeClient struct {
	exportToken string
	exportEmail string
	exportID    string
	exportErr   error
}

func (f *fakeClient) SendOTP(context.Context, string, string) (*api.OTPResponse, error) {
	return &api.OTPResponse{Success: true}, nil
}
func (f *fakeClient) SendWelcomeEmail(context.Context, string, string) (*api.MailResponse, error) {
	return &api.MailResponse{Success: true}, nil
}
func (f *fakeClient) ForgotPassword(context.Context, string) (*api.MailResponse, error) {
	return &api.MailResponse{Success: true}, nil
}
func (f *fakeClient) SendWeeklyReport(context.Context, string, models.WeeklyUsage) (*api.WeeklyReportResponse, error) {
	return &api.WeeklyReportResponse{Success: true}, nil
}
func (f *fakeClient) SignIn(context.Context, string, string) (*api.CredentialsResponse, error) {
	return &api.CredentialsResponse{}, nil
}
func (f *fakeClient) ExportCreative(_ context.Context, token, email string, c models.Creative) (*api.ExportResponse, error) {
	f.exportToken, f.exportEmail, f.exportID = token, email, c.ID
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return &api.ExportResponse{URL: "https://s3.example/" + c.ID, Key: "creatives/" + email + "/" + c.ID}, nil
}
func (f *fakeClient) Ping(context.Context) error {
	return nil
}

type fakeAccounts struct {
	loginID, loginPW string
	session          *services.Session
	loginErr         error

	form       services.RegistrationForm
	pending    *services.PendingRegistration
	beginErr   error
	otp        string
	completeOK bool

	resetEmail   string
	resetEmailed string
	resetPW      [2]string

	synced      bool
	welcomeSent bool
}

func (f *fakeAccounts) Login(_ context.Context, id, pw string) (*services.Session, error) {
	f.loginID, f.loginPW = id, pw
	return f.session, f.loginErr
}
func (f *fakeAccounts) BeginRegistration(_ context.Context, form services.RegistrationForm) (*services.PendingRegistration, error) {
	f.form = form
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.pending == nil {
		f.pending = &services.PendingRegistration{Form: form}
	}
	return f.pending, nil
}
func (f *fakeAccounts) CompleteRegistration(_ context.Context, _ *services.PendingRegistration, otp string) error {
	f.otp = otp
	f.completeOK = true
	return nil
}
func (f *fakeAccounts) RequestPasswordReset(_ context.Context, email string) error {
	f.resetEmailed = email
	return nil
}
func (f *fakeAccounts) ResetPassword(_ context.Context, email, pw, confirm string) error {
	f.resetEmail = email
	f.resetPW = [2]string{pw, confirm}
	return nil
}
func (f *fakeAccounts) SyncSession(context.Context, *services.Session) error {
	f.synced = true
	return nil
}
func (f *fakeAccounts) TriggerWelcomeEmail(context.Context, *services.Session) (bool, error) {
	return f.welcomeSent, nil
}

type fakeTracker struct {
	started string
	stops   int
}

func (f *fakeTracker) Start(_ context.Context, email string) {
	f.started = email
}
func (f *fakeTracker) Stop() {
	f.stops++
}

type fakeReports struct {
	email string
	resp  *api.WeeklyReportResponse
	err   error
}

func (f *fakeReports) SendWeeklyReport(_ context.Context, email string) (*api.WeeklyReportResponse, error) {
	f.email = email
	return f.resp, f.err
}
