package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/repomanager"
)

// testimonialListLimit caps the public listing.
const testimonialListLimit = 100

// TestimonialService handles user reviews. Non-admin users may publish at
// most one; deletion is allowed to the owner or an admin.
type TestimonialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTestimonialService(db *sql.DB, m repomanager.RepositoryManager) *TestimonialService {
	return &TestimonialService{db: db, repomanager: m}
}

// List returns testimonials newest first. When viewerID is non-empty the
// viewer's own entries carry IsOwner so the client can offer deletion.
func (s *TestimonialService) List(ctx context.Context, viewerID string) ([]*models.Testimonial, error) {
	items, err := s.repomanager.Testimonials(s.db).List(ctx, testimonialListLimit)
	if err != nil {
		return nil, err
	}
	if viewerID != "" {
		for _, item := range items {
			item.IsOwner = item.UserID == viewerID
		}
	}
	return items, nil
}

// Create publishes a testimonial for the user. The author's display name
// and avatar are denormalized onto the row at creation time. A non-admin
// who already published one gets common.ErrorAlreadyExists.
func (s *TestimonialService) Create(ctx context.Context, userID string, rating int, message string) (*models.Testimonial, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleAdmin {
		exists, err := s.repomanager.Testimonials(s.db).ExistsForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.ErrorAlreadyExists
		}
	}

	item := &models.Testimonial{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Rating:    rating,
		Message:   message,
	}
	if err := s.repomanager.Testimonials(s.db).Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating testimonial: %w", err)
	}
	return s.repomanager.Testimonials(s.db).GetByID(ctx, item.ID)
}

// Delete removes a testimonial. Only the owner or an admin may delete;
// anyone else gets common.ErrForbidden.
func (s *TestimonialService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	item, err := s.repomanager.Testimonials(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	if item.UserID != callerID && callerRole != models.RoleAdmin {
		return common.ErrForbidden
	}
	return s.repomanager.Testimonials(s.db).Delete(ctx, id)
}
