package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// SaveAutosave stores draft as the dashboard autosave. An empty email is a
// no-op.
func (s *Store) SaveAutosave(ctx context.Context, email string, draft any) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	if err := s.setJSON(ctx, AutosaveKey(email), draft); err != nil {
		s.logger.Warn(ctx, "failed to autosave", "email", email, "error", err)
		return fmt.Errorf("save autosave: %w", err)
	}
	return nil
}

// GetAutosave decodes the stored draft into dest and reports whether one was
// found.
func (s *Store) GetAutosave(ctx context.Context, email string, dest any) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	found, err := s.getJSON(ctx, AutosaveKey(email), dest)
	if err != nil {
		return false, fmt.Errorf("get autosave: %w", err)
	}
	return found, nil
}

// GetAutosaveRaw returns the stored draft undecoded, or nil.
func (s *Store) GetAutosaveRaw(ctx context.Context, email string) (json.RawMessage, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	b, err := s.repo.Get(ctx, AutosaveKey(email))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get autosave: %w", err)
	}
	return json.RawMessage(b), nil
}
