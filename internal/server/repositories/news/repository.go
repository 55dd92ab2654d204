package news

import (
	"context"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
)

// Repository stores news articles.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.NewsItem, error)
	GetByID(ctx context.Context, id string) (*models.NewsItem, error)
	Create(ctx context.Context, item *models.NewsItem) error
	Delete(ctx context.Context, id string) error
}
