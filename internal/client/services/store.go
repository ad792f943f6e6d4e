package services

import (
	"context"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

// ProfileStore is the subset of profilestore.Store used by the services.
type ProfileStore interface {
	SaveUserProfile(ctx context.Context, email string, u models.ProfileUpdate) error
	GetEmailByPhone(ctx context.Context, phone string) (string, error)
	RegisterUser(ctx context.Context, r models.Registration) error
	ValidateUserCredentials(ctx context.Context, email, password string) (models.CredentialCheck, error)
	CheckUserExists(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, email, password string) error
	SyncSession(ctx context.Context, u models.SessionUser) error
	HasWelcomeEmailBeenSent(ctx context.Context, email string) (bool, error)
	SetWelcomeEmailSent(ctx context.Context, email string) error
	UpdateUsageTime(ctx context.Context, email string)
	GetWeeklyUsage(ctx context.Context, email string) (models.WeeklyUsage, error)
	ClearUsageDates(ctx context.Context, email string, dates []string)
}
