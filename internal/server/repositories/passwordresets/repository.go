package passwordresets

import (
	"context"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository stores single-use password reset tokens.
type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.PasswordReset, error)
	Delete(ctx context.Context, token string) error
}
