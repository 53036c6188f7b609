package memory

import (
	"context"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
	"github.com/Gunvolt24/wiki_search/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

// Проверка, что кэш статей удовлетворяет порту OperationCache.
var _ ports.OperationCache = (*OperationCache[domain.CacheEntry])(nil)

// OperationCache - процессный кэш результатов операций: ключ -> значение V.
// Без TTL, без вытеснения и без ограничения размера: запись живёт до ближайшего Clear.
// Все операции потокобезопасны; Clear подменяет внутреннюю map целиком под блокировкой.
type OperationCache[V any] struct {
	store *gocache.Cache
}

// NewOperationCache - конструктор. Janitor go-cache не запускается (cleanupInterval = 0).
func NewOperationCache[V any]() *OperationCache[V] {
	return &OperationCache[V]{store: gocache.New(gocache.NoExpiration, 0)}
}

// Get - чистое чтение без побочных эффектов (кроме метрик).
func (c *OperationCache[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	raw, ok := c.store.Get(key)
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return zero, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return value, true
}

// Put - безусловная перезапись значения по ключу.
func (c *OperationCache[V]) Put(_ context.Context, key string, value V) {
	c.store.Set(key, value, gocache.NoExpiration)
	metrics.CacheOps.WithLabelValues("put").Inc()
	metrics.CacheSize.Set(float64(c.store.ItemCount()))
}

// Clear - удаляет все записи разом.
func (c *OperationCache[V]) Clear(_ context.Context) {
	c.store.Flush()
	metrics.CacheOps.WithLabelValues("clear").Inc()
	metrics.CacheSize.Set(0)
}

// Len - текущее число записей.
func (c *OperationCache[V]) Len() int { return c.store.ItemCount() }
