package ports

import (
	"context"

	"github.com/Gunvolt24/wiki_search/internal/domain"
)

type ArticleValidator interface {
	Validate(ctx context.Context, article *domain.Article) error
	// ValidateAll - непустой список; ошибка называет индекс первой невалидной статьи.
	ValidateAll(ctx context.Context, articles []*domain.Article) error
}
