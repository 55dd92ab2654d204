package testimonials

import (
	"context"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository stores testimonials.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.Testimonial, error)
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id string) error

	// ExistsForUser reports whether the user already published a testimonial.
	ExistsForUser(ctx context.Context, userID string) (bool, error)

	// UpdateAvatarForUser refreshes the denormalized avatar on the user's
	// testimonials.
	UpdateAvatarForUser(ctx context.Context, userID string, avatarURL *string) error
}
