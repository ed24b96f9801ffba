package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/svc/catalog"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := catalog.NewLRUCache(2, time.Minute)

	p := &catalog.Product{ID: "a", Name: "Elden Ring", Tags: []string{"rpg"}}
	require.NoError(t, c.Set(ctx, "a", p))

	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "Elden Ring", got.Name)

	t.Run("returns copies", func(t *testing.T) {
		got.Tags[0] = "changed"
		again, ok := c.Get(ctx, "a")
		require.True(t, ok)
		assert.Equal(t, []string{"rpg"}, again.Tags)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "b", &catalog.Product{ID: "b"}))
		require.NoError(t, c.Set(ctx, "c", &catalog.Product{ID: "c"}))

		_, ok := c.Get(ctx, "a")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "c"))
		_, ok := c.Get(ctx, "c")
		assert.False(t, ok)
	})

	t.Run("nil product is ignored", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "nil", nil))
		_, ok := c.Get(ctx, "nil")
		assert.False(t, ok)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var c catalog.Cache = catalog.NoOpCache{}

	require.NoError(t, c.Set(ctx, "a", &catalog.Product{ID: "a"}))
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "a"))
}
