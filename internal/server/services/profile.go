package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/auth"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/repomanager"
)

// ProfileService handles the authenticated account's own profile.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the account row for the authenticated user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Update patches the profile fields that are set. A changed avatar is also
// copied onto the user's testimonials, which denormalize it.
func (s *ProfileService) Update(ctx context.Context, userID string, fullName, avatarURL *string) (*models.User, error) {
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdateProfile(ctx, userID, fullName, avatarURL); err != nil {
			return err
		}
		if avatarURL != nil {
			return s.repomanager.Testimonials(tx).UpdateAvatarForUser(ctx, userID, avatarURL)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// ChangePassword verifies the current secret before storing a new hash.
// A wrong current password yields ErrInvalidCredentials.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return common.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, userID, hash)
}
