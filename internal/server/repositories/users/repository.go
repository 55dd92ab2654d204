package users

import (
	"context"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository is the account store. Create maps a duplicate email to
// common.ErrEmailTaken; lookups map missing rows to common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateProfile(ctx context.Context, id string, fullName, avatarURL *string) error
	SetEmailVerified(ctx context.Context, id string) error
}
