// Package passwordresets provides a PostgreSQL-backed repository for
// password reset tokens.
package passwordresets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
	"github.com/lyonblue/PHADMINISTRATION/internal/dbx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a reset token expiring at now+validity.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, token, userID, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Find returns the record for the exact token string, or
// common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.PasswordReset, error) {
	query := `
		SELECT token, user_id, expires_at
		FROM password_resets
		WHERE token = $1
	`
	rec := &models.PasswordReset{}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&rec.Token, &rec.UserID, &rec.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Delete consumes a token. Deleting an absent token is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM password_resets
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
