package ports

import "context"

// KnowledgeClient - клиент внешней базы знаний (один запрос, без ретраев).
type KnowledgeClient interface {
	// Lookup - краткое описание по термину; found=false, если описания нет.
	Lookup(ctx context.Context, term string) (extract string, found bool, err error)
}
