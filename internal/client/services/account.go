package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/client/client"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
)

// phonePattern matches identifiers typed as a phone number.
var phonePattern = regexp.MustCompile(`^[+]?[0-9\-\s()]+$`)

// IsPhoneIdentifier reports whether a login identifier is a phone number
// rather than an email.
func IsPhoneIdentifier(s string) bool {
	return phonePattern.MatchString(s) && !strings.Contains(s, "@")
}

// Session is a signed-in user with the server-issued token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.SessionUser
}

// RegistrationForm is the sign-up form as entered.
type RegistrationForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Role            string
}

// PendingRegistration is a form waiting for its emailed code.
type PendingRegistration struct {
	Form      RegistrationForm
	otp       string
	Simulated bool
}

// SimulatedOTP returns the code when the server did not actually send mail,
// so it can be shown to the user.
func (p *PendingRegistration) SimulatedOTP() string {
	if p.Simulated {
		return p.otp
	}
	return ""
}

// AccountService defines the account flows of the CLI.
//
// Contract:
//   - Login: resolve a phone number to an email, check the account and
//     password locally, then obtain a session token from the server.
//   - BeginRegistration / CompleteRegistration: two-step sign-up with an
//     emailed one-time code.
//   - RequestPasswordReset / ResetPassword: email a reset link; set a new
//     password.
//   - SyncSession / TriggerWelcomeEmail: post-login housekeeping.
type AccountService interface {
	Login(ctx context.Context, identifier, password string) (*Session, error)
	BeginRegistration(ctx context.Context, form RegistrationForm) (*PendingRegistration, error)
	CompleteRegistration(ctx context.Context, p *PendingRegistration, otp string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, password, confirm string) error
	SyncSession(ctx context.Context, s *Session) error
	TriggerWelcomeEmail(ctx context.Context, s *Session) (bool, error)
}

type accountService struct {
	store  ProfileStore
	client client.Client
	logger logging.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(store ProfileStore, c client.Client, logger logging.Logger) AccountService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &accountService{store: store, client: c, logger: logger.With("component", "account")}
}

// Login returns common.ErrIncorrectCredentials for an unknown phone number
// or a wrong password, common.ErrAccountNotFound for an unknown email and
// common.ErrNoPasswordSet for accounts created through OAuth.
func (a *accountService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	email := strings.TrimSpace(identifier)

	if IsPhoneIdentifier(email) {
		linked, err := a.store.GetEmailByPhone(ctx, email)
		if err != nil {
			return nil, err
		}
		if linked == "" {
			return nil, common.ErrIncorrectCredentials
		}
		email = linked
	}

	exists, err := a.store.CheckUserExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrAccountNotFound
	}

	check, err := a.store.ValidateUserCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		if errors.Is(check.Reason, common.ErrNoPasswordSet) {
			return nil, check.Reason
		}
		return nil, common.ErrIncorrectCredentials
	}

	resp, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, common.ErrIncorrectCredentials
		}
		return nil, err
	}

	a.logger.Info(ctx, "signed in", "email", resp.User.Email)
	return &Session{Token: resp.Token, ExpiresAt: resp.ExpiresAt, User: resp.User}, nil
}

func (a *accountService) BeginRegistration(ctx context.Context, form RegistrationForm) (*PendingRegistration, error) {
	if strings.TrimSpace(form.Email) == "" {
		return nil, common.ErrEmptyEmail
	}
	if form.Password != form.ConfirmPassword {
		return nil, common.ErrPasswordMismatch
	}

	exists, err := a.store.CheckUserExists(ctx, form.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	resp, err := a.client.SendOTP(ctx, form.Email, form.FirstName+" "+form.LastName)
	if err != nil {
		return nil, err
	}
	if resp.OTP == "" {
		return nil, fmt.Errorf("server returned no verification code: %w", common.ErrorInternal)
	}

	return &PendingRegistration{Form: form, otp: resp.OTP, Simulated: resp.Simulated}, nil
}

// CompleteRegistration checks the code, creates the account and sends the
// welcome email. A failed welcome email does not fail the registration.
func (a *accountService) CompleteRegistration(ctx context.Context, p *PendingRegistration, otp string) error {
	if p == nil || otp != p.otp {
		return common.ErrInvalidOTP
	}

	f := p.Form
	err := a.store.RegisterUser(ctx, models.Registration{
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Role:      f.Role,
	})
	if err != nil {
		return err
	}

	if _, err := a.client.SendWelcomeEmail(ctx, f.Email, f.FirstName+" "+f.LastName); err != nil {
		a.logger.Warn(ctx, "failed to send welcome email", "email", f.Email, "error", err)
	}
	return nil
}

func (a *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return common.ErrEmptyEmail
	}
	_, err := a.client.ForgotPassword(ctx, email)
	return err
}

func (a *accountService) ResetPassword(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	if strings.TrimSpace(email) == "" {
		return common.ErrEmptyEmail
	}
	return a.store.UpdateUserPassword(ctx, email, password)
}

// SyncSession records the session user's profile. Failures are logged only.
func (a *accountService) SyncSession(ctx context.Context, s *Session) error {
	if s == nil || s.User.Email == "" {
		return nil
	}
	if err := a.store.SyncSession(ctx, s.User); err != nil {
		a.logger.Warn(ctx, "session sync failed", "email", s.User.Email, "error", err)
		return err
	}
	return nil
}

// TriggerWelcomeEmail sends the welcome email once per user and reports
// whether it was sent by this call.
func (a *accountService) TriggerWelcomeEmail(ctx context.Context, s *Session) (bool, error) {
	if s == nil || s.User.Email == "" {
		return false, nil
	}
	email := s.User.Email

	sent, err := a.store.HasWelcomeEmailBeenSent(ctx, email)
	if err != nil || sent {
		return false, err
	}

	name := s.User.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if _, err := a.client.SendWelcomeEmail(ctx, email, name); err != nil {
		a.logger.Warn(ctx, "failed to send welcome email", "email", email, "error", err)
		return false, err
	}
	if err := a.store.SetWelcomeEmailSent(ctx, email); err != nil {
		return true, err
	}
	return true, nil
}

// ParseResetLink extracts the email from a password reset link.
func ParseResetLink(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("invalid reset link: %w", err)
	}
	email := u.Query().Get("email")
	if email == "" {
		return "", fmt.Errorf("invalid reset link: %w", common.ErrEmptyEmail)
	}
	return email, nil
}
