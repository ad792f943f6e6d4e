package profilestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// SaveUserProfile merges the provided fields over the stored profile,
// creating it if needed. A non-empty phone number also (re)points the phone
// index at this email; entries for previous numbers are kept.
func (s *Store) SaveUserProfile(ctx context.Context, email string, u models.ProfileUpdate) error {
	email = NormalizeEmail(email)
	if email == "" {
		return common.ErrEmptyEmail
	}

	err := updateJSON(ctx, s.repo, ProfileKey(email), func(p *models.UserProfile) error {
		u.Apply(p)
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to save user profile", "email", email, "error", err)
		return fmt.Errorf("save profile: %w", err)
	}

	if u.PhoneNumber != nil && *u.PhoneNumber != "" {
		if err := s.setJSON(ctx, PhoneKey(*u.PhoneNumber), email); err != nil {
			s.logger.Error(ctx, "failed to save phone mapping", "email", email, "error", err)
			return fmt.Errorf("save phone mapping: %w", err)
		}
	}
	return nil
}

// GetUserProfile returns nil for an empty email or a missing profile.
func (s *Store) GetUserProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	var p models.UserProfile
	found, err := s.getJSON(ctx, ProfileKey(email), &p)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

// GetEmailByPhone resolves a phone number to an email. An exact index entry
// wins; otherwise the first indexed number (in store iteration order) that
// contains phone, or is contained in it, is used. This lets "7569102138"
// find "+917569102138". Returns "" when nothing matches.
func (s *Store) GetEmailByPhone(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", nil
	}

	var email string
	found, err := s.getJSON(ctx, PhoneKey(phone), &email)
	if err != nil {
		return "", fmt.Errorf("get phone mapping: %w", err)
	}
	if found && email != "" {
		return email, nil
	}

	email = ""
	err = s.repo.Iterate(ctx, phonePrefix, func(key string, value []byte) (bool, error) {
		saved := strings.TrimPrefix(key, phonePrefix)
		if saved == "" || !(strings.Contains(saved, phone) || strings.Contains(phone, saved)) {
			return true, nil
		}
		if err := json.Unmarshal(value, &email); err != nil {
			s.logger.Warn(ctx, "skipping malformed phone mapping", "key", key, "error", err)
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return "", fmt.Errorf("scan phone mappings: %w", err)
	}
	return email, nil
}

// SyncSession seeds the profile of a signed-in session user so that OAuth
// users are recognized as existing users. Empty name and image are not
// written.
func (s *Store) SyncSession(ctx context.Context, u models.SessionUser) error {
	if NormalizeEmail(u.Email) == "" {
		return nil
	}
	upd := models.ProfileUpdate{Email: models.String(u.Email)}
	if u.Name != "" {
		upd.Name = models.String(u.Name)
	}
	if u.Image != "" {
		upd.Image = models.String(u.Image)
	}
	return s.SaveUserProfile(ctx, u.Email, upd)
}

// Theme returns the stored theme, or models.ThemeLight when unset.
func (s *Store) Theme(ctx context.Context, email string) (models.Theme, error) {
	p, err := s.GetUserProfile(ctx, email)
	if err != nil {
		return "", err
	}
	if p == nil || !p.Theme.Valid() {
		return models.ThemeLight, nil
	}
	return p.Theme, nil
}
