package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// Проверка, что ArticleValidator удовлетворяет интерфейсу ArticleValidator.
var _ ports.ArticleValidator = (*ArticleValidator)(nil)

// ErrInvalidArticle - базовая (sentinel error) ошибка валидации.
var ErrInvalidArticle = errors.New("article validation failed")

const (
	MaxTitleRunes   = 512
	MaxContentBytes = 1 << 20
)

// ArticleValidator - валидация статьи перед сохранением.
type ArticleValidator struct{}

// NewArticleValidator - конструктор ArticleValidator.
// Validate возвращает ErrInvalidArticle (с обёрнутой причиной) при любой проблеме.
func NewArticleValidator() *ArticleValidator { return &ArticleValidator{} }

// Validate - проверяет корректность полей статьи.
func (v *ArticleValidator) Validate(_ context.Context, article *domain.Article) error {
	if article == nil {
		return fmt.Errorf("%w: статья не может быть nil", ErrInvalidArticle)
	}
	if strings.TrimSpace(article.Title) == "" {
		return fmt.Errorf("%w: title обязателен", ErrInvalidArticle)
	}
	if !utf8.ValidString(article.Title) {
		return fmt.Errorf("%w: title должен быть в UTF-8", ErrInvalidArticle)
	}
	if utf8.RuneCountInString(article.Title) > MaxTitleRunes {
		return fmt.Errorf("%w: title длиннее %d символов", ErrInvalidArticle, MaxTitleRunes)
	}
	if len(article.Content) > MaxContentBytes {
		return fmt.Errorf("%w: content больше %d байт", ErrInvalidArticle, MaxContentBytes)
	}
	if article.ID < 0 {
		return fmt.Errorf("%w: id не может быть отрицательным", ErrInvalidArticle)
	}
	return nil
}

// ValidateAll - валидирует список; ошибка указывает индекс первой невалидной статьи.
func (v *ArticleValidator) ValidateAll(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return fmt.Errorf("%w: список статей пуст", ErrInvalidArticle)
	}
	for i, article := range articles {
		if err := v.Validate(ctx, article); err != nil {
			return fmt.Errorf("articles[%d]: %w", i, err)
		}
	}
	return nil
}
