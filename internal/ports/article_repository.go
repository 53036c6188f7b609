package ports

import (
	"context"

	"github.com/Gunvolt24/wiki_search/internal/domain"
)

// ArticleRepository - постоянное хранилище статей.
type ArticleRepository interface {
	// Save - вставка (ID == 0, ID назначает хранилище) или upsert по ID.
	Save(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindAll(ctx context.Context) ([]*domain.Article, error)
	// FindByID - (nil, nil), если статьи нет.
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	DeleteByID(ctx context.Context, id int64) error
}
