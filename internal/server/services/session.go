// Package services contains server-side business logic: issuing session
// tokens for credential sign-ins and exporting creatives to object storage.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/server/auth"
	"github.com/dmitrijs2005/retailmedia/internal/server/config"
)

// ErrPhoneSignIn is returned when a phone number reaches the server
// unresolved. Phone logins must be mapped to an email by the client first.
var ErrPhoneSignIn = errors.New("phone identifiers are not accepted")

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// IsPhone reports whether identifier looks like a phone number rather than an
// email address.
func IsPhone(identifier string) bool {
	return phonePattern.MatchString(identifier) && !strings.Contains(identifier, "@")
}

// SessionService mints and verifies the session JWTs.
type SessionService struct {
	jwtSecret       []byte
	sessionDuration time.Duration
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{
		jwtSecret:       []byte(cfg.SecretKey),
		sessionDuration: cfg.SessionDuration,
	}
}

// SignIn issues a session for email. Passwords are checked by the client
// against its own store, so only presence is required here.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*api.CredentialsResponse, error) {
	if email == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}
	if IsPhone(email) {
		return nil, ErrPhoneSignIn
	}

	name := auth.NameFromEmail(email)
	token, expiresAt, err := auth.GenerateToken(email, name, s.jwtSecret, s.sessionDuration)
	if err != nil {
		return nil, err
	}

	return &api.CredentialsResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.SessionUser{Email: email, Name: name},
	}, nil
}

// Authenticate verifies a bearer token and returns the session identity.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*models.SessionUser, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &models.SessionUser{Email: claims.Email, Name: claims.Name}, nil
}
