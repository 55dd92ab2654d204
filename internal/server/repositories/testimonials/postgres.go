// Package testimonials provides a PostgreSQL-backed repository for
// user testimonials.
package testimonials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// List returns the newest testimonials first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	query := `
		SELECT id, user_id, user_name, avatar_url, rating, message, created_at
		FROM testimonials
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Testimonial
	for rows.Next() {
		item := &models.Testimonial{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.UserName, &item.AvatarURL,
			&item.Rating, &item.Message, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

// GetByID returns one testimonial or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := `
		SELECT id, user_id, user_name, avatar_url, rating, message, created_at
		FROM testimonials
		WHERE id = $1
	`
	item := &models.Testimonial{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.UserID, &item.UserName,
		&item.AvatarURL, &item.Rating, &item.Message, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Create inserts a testimonial.
func (r *PostgresRepository) Create(ctx context.Context, t *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, user_id, user_name, avatar_url, rating, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.UserName, t.AvatarURL, t.Rating, t.Message)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a testimonial; common.ErrorNotFound when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM testimonials
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM testimonials WHERE user_id = $1
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpdateAvatarForUser(ctx context.Context, userID string, avatarURL *string) error {
	query := `
		UPDATE testimonials
		SET avatar_url = $1
		WHERE user_id = $2
	`
	_, err := r.db.ExecContext(ctx, query, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
