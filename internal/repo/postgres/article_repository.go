package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// Проверка, что ArticleRepository удовлетворяет порту.
var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// ArticleRepository - хранилище статей на Postgres (pgxpool).
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository - конструктор ArticleRepository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// Save - вставка новой статьи (ID == 0) или upsert по ID.
// Возвращает сохранённую копию с назначенным ID; вход не меняется.
func (r *ArticleRepository) Save(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if article == nil {
		return nil, errors.New("article is nil")
	}

	saved := *article
	if saved.ID == 0 {
		if err := r.pool.QueryRow(ctx, `
			INSERT INTO articles (title, content) VALUES ($1, $2)
			RETURNING id
		`, saved.Title, saved.Content).Scan(&saved.ID); err != nil {
			return nil, fmt.Errorf("insert article: %w", err)
		}
		return &saved, nil
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// после Commit Rollback - no-op
	defer func() { _ = transaction.Rollback(ctx) }()

	if _, err = transaction.Exec(ctx, `
		INSERT INTO articles (id, title, content) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content
	`, saved.ID, saved.Title, saved.Content); err != nil {
		return nil, fmt.Errorf("upsert article: %w", err)
	}

	// явный ID мог обогнать последовательность
	if _, err = transaction.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('articles', 'id'),
			GREATEST((SELECT MAX(id) FROM articles), 1))
	`); err != nil {
		return nil, fmt.Errorf("sync id sequence: %w", err)
	}

	if err = transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &saved, nil
}

// FindAll - все статьи по возрастанию ID.
func (r *ArticleRepository) FindAll(ctx context.Context) ([]*domain.Article, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, content FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		article := &domain.Article{}
		if err := rows.Scan(&article.ID, &article.Title, &article.Content); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("articles rows: %w", err)
	}
	return articles, nil
}

// FindByID - статья по ID или (nil, nil), если её нет.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, content FROM articles WHERE id = $1
	`, id).Scan(&article.ID, &article.Title, &article.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select article: %w", err)
	}
	return &article, nil
}

// DeleteByID - удаление по ID; отсутствие строки не ошибка.
func (r *ArticleRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
