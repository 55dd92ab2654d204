// Package news provides a PostgreSQL-backed repository for news articles.
package news

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

// List returns the newest articles first, with the author's display name
// joined in. Articles whose author was deleted keep an empty author name.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	query := `
		SELECT n.id, n.title, n.subtitle, n.description, n.image_url, n.created_at,
		       COALESCE(u.full_name, '') AS author_name
		FROM news n
		LEFT JOIN users u ON n.user_id = u.id
		ORDER BY n.created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.NewsItem
	for rows.Next() {
		item := &models.NewsItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Subtitle, &item.Description,
			&item.ImageURL, &item.CreatedAt, &item.AuthorName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

// GetByID returns one article with its author name, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.NewsItem, error) {
	query := `
		SELECT n.id, n.title, n.subtitle, n.description, n.image_url, n.created_at,
		       COALESCE(u.full_name, '') AS author_name
		FROM news n
		LEFT JOIN users u ON n.user_id = u.id
		WHERE n.id = $1
	`
	item := &models.NewsItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title, &item.Subtitle,
		&item.Description, &item.ImageURL, &item.CreatedAt, &item.AuthorName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Create inserts an article.
func (r *PostgresRepository) Create(ctx context.Context, item *models.NewsItem) error {
	query := `
		INSERT INTO news (id, user_id, title, subtitle, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Title, item.Subtitle, item.Description, item.ImageURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes an article; common.ErrorNotFound when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM news
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
