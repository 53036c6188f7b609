package ports

import (
	"context"

	"github.com/Gunvolt24/wiki_search/internal/domain"
)

// OperationCache - общий кэш результатов операций сервиса статей.
// Требования к реализации: потокобезопасность; Get/Put не хуже O(1);
// Clear атомарен относительно конкурентных чтений; без вытеснения и TTL.
type OperationCache interface {
	// Get - значение по ключу; (entry, true) при попадании, (zero, false) при промахе.
	Get(ctx context.Context, key string) (domain.CacheEntry, bool)

	// Put - безусловно перезаписывает значение по ключу.
	Put(ctx context.Context, key string, entry domain.CacheEntry)

	// Clear - удаляет все записи.
	Clear(ctx context.Context)
}
