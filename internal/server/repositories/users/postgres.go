// Package users provides a PostgreSQL-backed repository for account rows.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account row. The unique index on email is the final
// authority for duplicate registrations; a unique violation comes back as
// common.ErrEmailTaken so a racing insert fails the same way the pre-check
// does.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, role, email_verified_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.EmailVerifiedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return common.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByEmail returns the account with the given (already normalized) email,
// or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, avatar_url, role, email_verified_at, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the account with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, avatar_url, role, email_verified_at, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.AvatarURL, &user.Role, &user.EmailVerifiedAt, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored credential hash.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $1
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdateProfile updates only the non-authentication fields that are set.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, fullName, avatarURL *string) error {
	query := `
		UPDATE users SET
			full_name = COALESCE($1, full_name),
			avatar_url = COALESCE($2, avatar_url)
		WHERE id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, fullName, avatarURL, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetEmailVerified stamps the verification timestamp.
func (r *PostgresRepository) SetEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users SET email_verified_at = now()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
