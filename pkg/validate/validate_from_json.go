package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// ValidateArticleFromJSON - строгий разбор и валидация одной статьи.
func ValidateArticleFromJSON(ctx context.Context, validator ports.ArticleValidator, raw []byte) (*domain.Article, error) {
	var article domain.Article
	if err := decodeStrict(raw, &article); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// ValidateArticlesFromJSON - строгий разбор JSON-массива; возвращает валидные статьи
// и число невалидных.
func ValidateArticlesFromJSON(ctx context.Context, validator ports.ArticleValidator, raw []byte) ([]*domain.Article, int, error) {
	var items []json.RawMessage
	if err := decodeStrict(raw, &items); err != nil {
		return nil, 0, err
	}

	valid := make([]*domain.Article, 0, len(items))
	invalid := 0
	for _, item := range items {
		article, err := ValidateArticleFromJSON(ctx, validator, item)
		if err != nil {
			invalid++
			continue
		}
		valid = append(valid, article)
	}
	return valid, invalid, nil
}

// decodeStrict - DisallowUnknownFields и запрет хвостовых данных.
func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("invalid json: trailing data")
	}
	return nil
}

// isJSONArray - первый значимый символ '['.
func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
