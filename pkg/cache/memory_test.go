package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type cachedSummary struct {
	TotalFarms    int64   `json:"totalFarms"`
	TotalHectares float64 `json:"totalHectares"`
}

func newTestMemoryCache(t *testing.T) *MemoryCache {
	return NewMemoryCache(time.Minute, time.Minute, nil, zaptest.NewLogger(t))
}

func TestMemoryCache_EstruturaViaJSON(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "resumo", &cachedSummary{TotalFarms: 3, TotalHectares: 250}, time.Minute))

	var got cachedSummary
	found, err := c.Get(ctx, "resumo", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(3), got.TotalFarms)
	assert.Equal(t, 250.0, got.TotalHectares)
}

func TestMemoryCache_EscalarDireto(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "estado", "SP", time.Minute))

	var got string
	found, err := c.Get(ctx, "estado", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "SP", got)
}

func TestMemoryCache_AusenteEExclusao(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	var got string
	found, err := c.Get(ctx, "ausente", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "efemero", "x", time.Minute))
	require.NoError(t, c.Delete(ctx, "efemero"))

	found, err = c.Get(ctx, "efemero", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
