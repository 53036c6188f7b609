package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ValidateFile - валидирует файл как JSON (объект или массив) или JSONL и пишет валидные
// статьи в writer. Возвращает сводку вида "N valid / M invalid".
func ValidateFile(ctx context.Context, validator ports.ArticleValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	resSummary := ""

	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return resSummary, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return resSummary, fmt.Errorf("read file: %w", err)
		}
		if isJSONArray(raw) {
			return validateArray(ctx, validator, raw, ow)
		}
		article, err := ValidateArticleFromJSON(ctx, validator, raw)
		if err != nil {
			return "0 valid / 1 invalid", err
		}
		if err := writeJSONLine(ow, article); err != nil {
			return resSummary, fmt.Errorf("write json: %w", err)
		}
		return "1 valid / 0 invalid", nil

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, file, ow)
		if err != nil {
			return resSummary, err
		}
		return summary(result.ValidLinesCount, result.InvalidLinesCount), nil

	default:
		return resSummary, fmt.Errorf("unsupported format: %s", format)
	}
}

func validateArray(ctx context.Context, validator ports.ArticleValidator, raw []byte, ow io.Writer) (string, error) {
	articles, invalid, err := ValidateArticlesFromJSON(ctx, validator, raw)
	if err != nil {
		return "", err
	}
	for _, article := range articles {
		if err := writeJSONLine(ow, article); err != nil {
			return "", fmt.Errorf("write json: %w", err)
		}
	}
	return summary(len(articles), invalid), nil
}

func summary(valid, invalid int) string {
	return fmt.Sprintf("%d valid / %d invalid", valid, invalid)
}
