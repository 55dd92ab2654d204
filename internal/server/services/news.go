package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/models"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/repomanager"
)

// newsListLimit caps the public listing.
const newsListLimit = 50

// NewsService handles published articles. Listing is public; create and
// delete are admin operations, enforced at the route layer.
type NewsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNewsService(db *sql.DB, m repomanager.RepositoryManager) *NewsService {
	return &NewsService{db: db, repomanager: m}
}

// List returns the latest articles, newest first.
func (s *NewsService) List(ctx context.Context) ([]*models.NewsItem, error) {
	return s.repomanager.News(s.db).List(ctx, newsListLimit)
}

// Create publishes an article authored by the given user.
func (s *NewsService) Create(ctx context.Context, authorID, title, subtitle, description, imageURL string) (*models.NewsItem, error) {
	item := &models.NewsItem{
		ID:          uuid.NewString(),
		UserID:      authorID,
		Title:       title,
		Subtitle:    subtitle,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.repomanager.News(s.db).Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating article: %w", err)
	}
	return s.repomanager.News(s.db).GetByID(ctx, item.ID)
}

// Delete removes an article; common.ErrorNotFound when it does not exist.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.repomanager.News(s.db).Delete(ctx, id)
}
