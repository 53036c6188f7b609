package ports

import (
	"context"

	"github.com/Gunvolt24/wiki_search/internal/domain"
)

// ArticleService - операции над статьями, доступные транспортному слою.
type ArticleService interface {
	Search(ctx context.Context, term string) (*domain.Article, error)
	SearchAndSave(ctx context.Context, term string) (domain.ArticleView, error)
	ListAll(ctx context.Context) ([]domain.ArticleView, error)
	GetByID(ctx context.Context, id int64) (*domain.ArticleView, error)
	Create(ctx context.Context, article *domain.Article) (domain.ArticleView, error)
	Update(ctx context.Context, id int64, article *domain.Article) (domain.ArticleView, error)
	Delete(ctx context.Context, id int64) error
	CreateBulk(ctx context.Context, articles []*domain.Article) ([]domain.ArticleView, error)
}
