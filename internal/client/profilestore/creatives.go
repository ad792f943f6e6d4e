package profilestore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
)

var ErrMissingCreativeID = errors.New("creative id is required")

// SaveCreative replaces the creative with the same id in place or appends it.
func (s *Store) SaveCreative(ctx context.Context, email string, c models.Creative) error {
	email = NormalizeEmail(email)
	if email == "" {
		return common.ErrEmptyEmail
	}
	if c.ID == "" {
		return ErrMissingCreativeID
	}

	err := updateJSON(ctx, s.repo, CreativesKey(email), func(list *[]models.Creative) error {
		i := slices.IndexFunc(*list, func(x models.Creative) bool { return x.ID == c.ID })
		if i >= 0 {
			(*list)[i] = c
		} else {
			*list = append(*list, c)
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to save creative", "email", email, "id", c.ID, "error", err)
		return fmt.Errorf("save creative: %w", err)
	}
	return nil
}

// GetCreatives returns the saved creatives in save order. An empty email or
// no saved creatives yields an empty slice.
func (s *Store) GetCreatives(ctx context.Context, email string) ([]models.Creative, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return []models.Creative{}, nil
	}

	var list []models.Creative
	if _, err := s.getJSON(ctx, CreativesKey(email), &list); err != nil {
		return nil, fmt.Errorf("get creatives: %w", err)
	}
	if list == nil {
		list = []models.Creative{}
	}
	return list, nil
}

// GetCreativeByID returns nil when no creative has id.
func (s *Store) GetCreativeByID(ctx context.Context, email, id string) (*models.Creative, error) {
	list, err := s.GetCreatives(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			c := list[i]
			return &c, nil
		}
	}
	return nil, nil
}

// DeleteCreative removes the creative with id and returns the remaining list.
func (s *Store) DeleteCreative(ctx context.Context, email, id string) ([]models.Creative, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return []models.Creative{}, nil
	}

	updated := []models.Creative{}
	err := updateJSON(ctx, s.repo, CreativesKey(email), func(list *[]models.Creative) error {
		*list = slices.DeleteFunc(*list, func(x models.Creative) bool { return x.ID == id })
		if *list == nil {
			*list = []models.Creative{}
		}
		updated = append(updated[:0], *list...)
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to delete creative", "email", email, "id", id, "error", err)
		return nil, fmt.Errorf("delete creative: %w", err)
	}
	return updated, nil
}
