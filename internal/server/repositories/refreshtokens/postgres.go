// Package refreshtokens provides a PostgreSQL-backed repository for the
// refresh sessions used in the authentication flow.
package refreshtokens

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

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new session for userID with an expiry of now+validity.
func (r *PostgresRepository) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, tokenHash, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// FindActive returns the non-revoked session row for the given identity and
// fingerprint. If not found (never issued, revoked, or tampered), it returns
// common.ErrorNotFound.
func (r *PostgresRepository) FindActive(ctx context.Context, userID string, tokenHash string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM refresh_tokens
		WHERE user_id = $1 AND token_hash = $2 AND revoked_at IS NULL
	`
	token := &models.RefreshToken{}
	if err := r.db.QueryRowContext(ctx, query, userID, tokenHash).Scan(&token.ID, &token.UserID, &token.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// Revoke conditionally revokes a single session. The revoked_at IS NULL
// guard makes revocation first-wins under concurrent rotation: exactly one
// caller sees one row affected.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return affected, nil
}

// RevokeByHash revokes the active session matching identity and fingerprint.
// No-op when nothing matches.
func (r *PostgresRepository) RevokeByHash(ctx context.Context, userID string, tokenHash string) error {
	query := `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE user_id = $1 AND token_hash = $2 AND revoked_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, userID, tokenHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every active session of the identity.
func (r *PostgresRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	query := `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
