package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/domain"
)

func resp(answer string) *domain.Response {
	return &domain.Response{Answer: answer, Confidence: 0.8}
}

func TestGetMiss(t *testing.T) {
	c := NewCache(0, 0)
	got, ok := c.Get(context.Background(), "nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSetThenGet(t *testing.T) {
	c := NewCache(0, 0)
	ctx := context.Background()
	want := resp("ответ")
	c.Set(ctx, "вопрос", want)

	got, ok := c.Get(ctx, "вопрос")
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestSetOverwrites(t *testing.T) {
	c := NewCache(0, 0)
	ctx := context.Background()
	c.Set(ctx, "k", resp("старый"))
	c.Set(ctx, "k", resp("новый"))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "новый", got.Answer)
	assert.Equal(t, 1, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := NewCache(2, 0)
	ctx := context.Background()
	c.Set(ctx, "a", resp("a"))
	c.Set(ctx, "b", resp("b"))

	// touching a makes b the eviction candidate
	_, ok := c.Get(ctx, "a")
	require.True(t, ok)

	c.Set(ctx, "c", resp("c"))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := NewCache(0, time.Minute)
	clock := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	ctx := context.Background()
	c.Set(ctx, "k", resp("v"))

	clock = clock.Add(30 * time.Second)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	clock = clock.Add(31 * time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestPurge(t *testing.T) {
	c := NewCache(0, 0)
	ctx := context.Background()
	c.Set(ctx, "a", resp("a"))
	c.Set(ctx, "b", resp("b"))

	c.Purge(ctx)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}
