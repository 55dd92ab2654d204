package verifications

import (
	"context"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository stores single-use email verification tokens. Find matches the
// exact token string; Delete consumes it.
type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.EmailVerification, error)
	Delete(ctx context.Context, token string) error
}
