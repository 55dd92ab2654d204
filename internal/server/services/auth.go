// Package services contains server-side business logic. This file implements
// AuthService: account registration and verification, login, refresh token
// rotation, logout, and the password reset flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/auth"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/config"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/repomanager"
)

// refreshTokenBytes is the entropy of a raw refresh token. The presented
// form is the hex encoding, twice this many characters.
const refreshTokenBytes = 48

// actionTokenBytes is the entropy of verification and reset tokens.
const actionTokenBytes = 32

// TokenPair bundles a short-lived access token and a long-lived refresh
// token. RefreshToken is the raw value; only its fingerprint is stored.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService owns the credential and session lifecycle.
type AuthService struct {
	db                                *sql.DB
	repomanager                       repomanager.RepositoryManager
	jwtSecret                         []byte
	accessTokenValidityDuration       time.Duration
	refreshTokenValidityDuration      time.Duration
	verificationTokenValidityDuration time.Duration
	resetTokenValidityDuration        time.Duration
	requireEmailVerification          bool
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                                db,
		repomanager:                       m,
		jwtSecret:                         []byte(cfg.SecretKey),
		accessTokenValidityDuration:       cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration:      cfg.RefreshTokenValidityDuration,
		verificationTokenValidityDuration: cfg.VerificationTokenValidityDuration,
		resetTokenValidityDuration:        cfg.ResetTokenValidityDuration,
		requireEmailVerification:          cfg.RequireEmailVerification,
	}
}

// NormalizeEmail lowercases and trims an address so case-varied duplicates
// collapse to one identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a self-service account with the "user" role. When email
// verification is required it returns the raw verification token for the
// caller to deliver; otherwise the account is verified immediately and the
// token is empty. A duplicate email yields common.ErrEmailTaken, with the
// database unique index as the final authority under concurrency.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, string, error) {
	return s.createAccount(ctx, email, password, fullName, models.RoleUser, !s.requireEmailVerification)
}

// CreateAccountWithRole is the privileged account creation path. The role
// is chosen by the caller and the account still goes through verification
// unless preVerified is set.
func (s *AuthService) CreateAccountWithRole(ctx context.Context, email, password, fullName, role string, preVerified bool) (*models.User, string, error) {
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, "", fmt.Errorf("unknown role %q", role)
	}
	return s.createAccount(ctx, email, password, fullName, role, preVerified)
}

func (s *AuthService) createAccount(ctx context.Context, email, password, fullName, role string, verified bool) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
	}
	if verified {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}

	var verificationToken string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		if verified {
			return nil
		}
		token, err := common.MakeRandHexString(actionTokenBytes)
		if err != nil {
			return common.ErrorInternal
		}
		if err := s.repomanager.Verifications(tx).Create(ctx, user.ID, token, s.verificationTokenValidityDuration); err != nil {
			return err
		}
		verificationToken = token
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, "", common.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("error creating account: %w", err)
	}

	return user, verificationToken, nil
}

// VerifyEmail consumes a verification token and stamps the account
// verified. An unknown token yields ErrInvalidToken; an expired one yields
// ErrTokenExpired and is left in place.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	v, err := s.repomanager.Verifications(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("error searching verification token: %w", err)
	}
	if v.Expires.Before(time.Now()) {
		return common.ErrTokenExpired
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).SetEmailVerified(ctx, v.UserID); err != nil {
			return err
		}
		return s.repomanager.Verifications(tx).Delete(ctx, token)
	})
}

// Login verifies credentials and mints a token pair. Unknown email and
// wrong password both come back as ErrInvalidCredentials, and the unknown
// path burns a dummy bcrypt comparison so the two are observationally
// alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.DummyCompare(password)
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrInvalidCredentials
	}
	if s.requireEmailVerification && user.EmailVerifiedAt == nil {
		return nil, nil, common.ErrEmailNotVerified
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh session: the presented token is revoked and a
// fresh pair is issued atomically. A token that is unknown, already
// revoked, or loses the rotation race yields ErrInvalidRefresh; a matching
// but expired one yields ErrRefreshTokenExpired.
func (s *AuthService) Refresh(ctx context.Context, userID, refreshToken string) (*TokenPair, error) {
	tokenHash := auth.HashToken(refreshToken)

	rec, err := s.repomanager.RefreshTokens(s.db).FindActive(ctx, userID, tokenHash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefresh
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if rec.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		affected, err := s.repomanager.RefreshTokens(tx).Revoke(ctx, rec.ID)
		if err != nil {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}
		if affected == 0 {
			// Another caller rotated this session first.
			return common.ErrInvalidRefresh
		}
		// Re-read inside the tx so a role change since login takes effect.
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error reading account: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrInvalidRefresh) {
			return nil, common.ErrInvalidRefresh
		}
		return nil, err
	}
	return pair, nil
}

// Logout revokes the presented refresh session. Missing or already-revoked
// sessions are not errors; logout always succeeds from the caller's view.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if userID == "" || refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).RevokeByHash(ctx, userID, auth.HashToken(refreshToken))
}

// ForgotPassword issues a reset token for the account, if one exists. An
// unknown email returns an empty token and no error so the endpoint cannot
// be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", common.ErrorInternal
	}

	token, err := common.MakeRandHexString(actionTokenBytes)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := s.repomanager.PasswordResets(s.db).Create(ctx, user.ID, token, s.resetTokenValidityDuration); err != nil {
		return "", fmt.Errorf("error creating reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token, replaces the credential, and
// revokes every refresh session of the account so stolen sessions die with
// the old password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	pr, err := s.repomanager.PasswordResets(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("error searching reset token: %w", err)
	}
	if pr.Expires.Before(time.Now()) {
		return common.ErrTokenExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, pr.UserID, hash); err != nil {
			return err
		}
		if err := s.repomanager.PasswordResets(tx).Delete(ctx, token); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).RevokeAllForUser(ctx, pr.UserID)
	})
}

// ParseAccessToken verifies an access token against the service secret.
func (s *AuthService) ParseAccessToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(refreshTokenBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, auth.HashToken(refresh), s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
