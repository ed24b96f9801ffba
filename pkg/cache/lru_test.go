package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		c := cache.New[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		var evicted []string
		c := cache.New(2, cache.WithEvictCallback(func(k string, _ int) {
			evicted = append(evicted, k)
		}))
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		assert.Equal(t, []string{"b"}, evicted)
	})

	t.Run("replace returns previous value", func(t *testing.T) {
		t.Parallel()

		c := cache.New[string, int](2)
		c.Put("a", 1)
		old, replaced := c.Put("a", 5)
		assert.True(t, replaced)
		assert.Equal(t, 1, old)
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := cache.New(4,
			cache.WithTTL[string, int](time.Minute),
			cache.WithClock[string, int](func() time.Time { return now }),
		)
		c.Put("a", 1)

		now = now.Add(30 * time.Second)
		_, ok := c.Get("a")
		assert.True(t, ok)

		now = now.Add(31 * time.Second)
		_, ok = c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("remove and clear", func(t *testing.T) {
		t.Parallel()

		c := cache.New[int, string](3)
		c.Put(1, "x")
		c.Put(2, "y")

		v, ok := c.Remove(1)
		assert.True(t, ok)
		assert.Equal(t, "x", v)

		c.Clear()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("panics on zero capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.New[string, int](0) })
	})
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.New[int, int](50)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := range 200 {
				c.Put(base*1000+j, j)
				c.Get(base*1000 + j/2)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
