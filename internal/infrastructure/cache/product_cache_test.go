package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/domain/catalog"
)

func TestProductCacheHitAndMiss(t *testing.T) {
	c := NewProductCache(time.Minute)

	_, ok := c.Get("u1")
	assert.False(t, ok)

	c.Put("u1", []catalog.Product{{ID: "p1", Title: "Biscuit"}})
	got, ok := c.Get("u1")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	// Other users are isolated.
	_, ok = c.Get("u2")
	assert.False(t, ok)
}

func TestProductCacheExpiry(t *testing.T) {
	c := NewProductCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("u1", []catalog.Product{{ID: "p1"}})

	now = now.Add(30 * time.Second)
	_, ok := c.Get("u1")
	assert.True(t, ok)

	now = now.Add(45 * time.Second)
	_, ok = c.Get("u1")
	assert.False(t, ok)
}

func TestProductCacheInvalidate(t *testing.T) {
	c := NewProductCache(time.Minute)
	c.Put("u1", []catalog.Product{{ID: "p1"}})
	c.Invalidate("u1")
	_, ok := c.Get("u1")
	assert.False(t, ok)
}

func TestProductCacheCopies(t *testing.T) {
	c := NewProductCache(time.Minute)
	original := []catalog.Product{{ID: "p1", Stock: 5}}
	c.Put("u1", original)

	got, ok := c.Get("u1")
	require.True(t, ok)
	got[0].Stock = 999

	again, ok := c.Get("u1")
	require.True(t, ok)
	assert.Equal(t, int64(5), again[0].Stock)
}
