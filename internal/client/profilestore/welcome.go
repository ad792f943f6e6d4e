package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// HasWelcomeEmailBeenSent reports whether the welcome flag is stored as true.
func (s *Store) HasWelcomeEmailBeenSent(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	b, err := s.repo.Get(ctx, WelcomeKey(email))
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get welcome flag: %w", err)
	}
	var sent bool
	if err := json.Unmarshal(b, &sent); err != nil {
		return false, nil
	}
	return sent, nil
}

// SetWelcomeEmailSent stores the welcome flag. An empty email is a no-op.
func (s *Store) SetWelcomeEmailSent(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	if err := s.setJSON(ctx, WelcomeKey(email), true); err != nil {
		return fmt.Errorf("set welcome flag: %w", err)
	}
	return nil
}
