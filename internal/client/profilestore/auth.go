package profilestore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// Messages shown to users for CredentialCheck failures.
const (
	MsgUserNotFound    = "User not found"
	MsgNoPasswordSet   = "Please sign in with Google or reset your password."
	MsgInvalidPassword = "Invalid password"
	MsgValidationError = "Validation error"
)

// CheckUserExists reports whether an auth record or a profile is stored.
func (s *Store) CheckUserExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	ok, err := s.exists(ctx, AuthKey(email))
	if err != nil || ok {
		return ok, err
	}
	return s.exists(ctx, ProfileKey(email))
}

// RegisterUser creates the auth record and profile of a new user. It fails
// with common.ErrUserAlreadyExists when either already exists.
func (s *Store) RegisterUser(ctx context.Context, r models.Registration) error {
	email := NormalizeEmail(r.Email)
	if email == "" {
		return common.ErrEmptyEmail
	}

	exists, err := s.CheckUserExists(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "email", email, "error", err)
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return common.ErrUserAlreadyExists
	}

	if err := s.setJSON(ctx, AuthKey(email), models.AuthRecord{Password: r.Password}); err != nil {
		s.logger.Error(ctx, "registration failed", "email", email, "error", err)
		return fmt.Errorf("save auth record: %w", err)
	}

	err = s.SaveUserProfile(ctx, email, models.ProfileUpdate{
		Name: models.String(r.FullName()),
		Role: models.String(r.Role),
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return nil
}

// ValidateUserCredentials compares password with the stored one. Failures
// are reported in the result; the returned error is only set when the store
// could not be read.
func (s *Store) ValidateUserCredentials(ctx context.Context, email, password string) (models.CredentialCheck, error) {
	email = NormalizeEmail(email)

	var auth models.AuthRecord
	found, err := s.getJSON(ctx, AuthKey(email), &auth)
	if err != nil {
		return validationError(), fmt.Errorf("get auth record: %w", err)
	}

	if !found {
		hasProfile, err := s.exists(ctx, ProfileKey(email))
		if err != nil {
			return validationError(), fmt.Errorf("get profile: %w", err)
		}
		if hasProfile {
			return models.CredentialCheck{Reason: common.ErrNoPasswordSet, Message: MsgNoPasswordSet}, nil
		}
		return models.CredentialCheck{Reason: common.ErrUserNotFound, Message: MsgUserNotFound}, nil
	}

	if auth.Password != password {
		return models.CredentialCheck{Reason: common.ErrInvalidPassword, Message: MsgInvalidPassword}, nil
	}
	return models.CredentialCheck{IsValid: true}, nil
}

func validationError() models.CredentialCheck {
	return models.CredentialCheck{Reason: common.ErrorInternal, Message: MsgValidationError}
}

// UpdateUserPassword creates or overwrites the auth record. The profile is
// not touched.
func (s *Store) UpdateUserPassword(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return common.ErrEmptyEmail
	}
	if err := s.setJSON(ctx, AuthKey(email), models.AuthRecord{Password: password}); err != nil {
		s.logger.Error(ctx, "failed to update password", "email", email, "error", err)
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
