//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/wiki_search/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeArticle - валидная несохранённая статья с уникальным заголовком.
func MakeArticle(opts ...func(*domain.Article)) domain.Article {
	a := domain.Article{
		Title:   "article-" + UniqSuffix(),
		Content: "content " + UniqSuffix(),
	}
	for _, fn := range opts {
		fn(&a)
	}
	return a
}

func WithTitle(title string) func(*domain.Article) {
	return func(a *domain.Article) { a.Title = title }
}

func WithContent(content string) func(*domain.Article) {
	return func(a *domain.Article) { a.Content = content }
}
