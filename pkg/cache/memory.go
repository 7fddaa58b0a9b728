package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/agrotech/farm-api/internal/infra/metrics"
)

// MemoryCache implementa a interface Cache sobre armazenamento em memória
// do processo. go-cache já é seguro para uso concorrente.
type MemoryCache struct {
	store   *gocache.Cache
	logger  *zap.Logger
	metrics *metrics.APIMetrics
	hits    int64
	misses  int64
}

// NewMemoryCache cria um cache em memória com a expiração padrão e o
// intervalo de limpeza informados
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, m *metrics.APIMetrics, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		store:   gocache.New(defaultExpiration, cleanupInterval),
		logger:  logger,
		metrics: m,
	}
}

// Set armazena um valor com a expiração dada
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.store.Set(key, value, expiration)
	return nil
}

// Get recupera um valor para dest. Escalares são atribuídos diretamente;
// estruturas passam por JSON para desacoplar o tipo armazenado do destino.
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, found := c.store.Get(key)
	c.observe(found)
	if !found {
		return false, nil
	}

	if assignScalar(value, dest) {
		return true, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar valor do cache", zap.Error(err))
		return true, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar valor do cache", zap.Error(err))
		return true, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.store.Flush()
	return nil
}

// Ping verifica se o cache está funcionando
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil // O cache em memória está sempre disponível
}

// observe contabiliza acerto ou falha e publica a taxa de acertos
func (c *MemoryCache) observe(hit bool) {
	if hit {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}

	if c.metrics == nil {
		return
	}
	hits := atomic.LoadInt64(&c.hits)
	total := hits + atomic.LoadInt64(&c.misses)
	if total > 0 {
		c.metrics.UpdateCacheHitRatio("memory", float64(hits)/float64(total))
	}
}

// assignScalar cobre os tipos escalares mais comuns sem passar por JSON
func assignScalar(value, dest interface{}) bool {
	switch d := dest.(type) {
	case *string:
		if v, ok := value.(string); ok {
			*d = v
			return true
		}
	case *int:
		if v, ok := value.(int); ok {
			*d = v
			return true
		}
	case *bool:
		if v, ok := value.(bool); ok {
			*d = v
			return true
		}
	case *float64:
		if v, ok := value.(float64); ok {
			*d = v
			return true
		}
	}
	return false
}
