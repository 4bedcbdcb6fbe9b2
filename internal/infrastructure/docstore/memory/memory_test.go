package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/infrastructure/docstore"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.Set(ctx, "users/u1/products/p1", map[string]any{"title": "Soap", "stock": int64(10)}, false)
	require.NoError(t, err)

	doc, err := s.Get(ctx, "users/u1/products/p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "Soap", doc.Data["title"])

	require.NoError(t, s.Delete(ctx, "users/u1/products/p1"))

	_, err = s.Get(ctx, "users/u1/products/p1")
	assert.True(t, apperror.IsNotFound(err))

	// deleting an absent document is not an error
	assert.NoError(t, s.Delete(ctx, "users/u1/products/p1"))
}

func TestStore_SetMerge(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Set(ctx, "users/u1/notes/n1", map[string]any{"title": "a", "notes": "old"}, false))
	require.NoError(t, s.Set(ctx, "users/u1/notes/n1", map[string]any{"notes": "new"}, true))

	doc, err := s.Get(ctx, "users/u1/notes/n1")
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Data["title"], "merge must keep untouched fields")
	assert.Equal(t, "new", doc.Data["notes"])
}

func TestStore_QueryFilters(t *testing.T) {
	ctx := context.Background()
	s := New()

	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	for i, ts := range []time.Time{base.AddDate(0, 0, -10), base, base.AddDate(0, 0, 10)} {
		err := s.Set(ctx, "users/u1/sales/s"+string(rune('a'+i)), map[string]any{
			"id":        "p1",
			"timestamp": ts,
		}, false)
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, "users/u1/sales",
		docstore.WhereRange("timestamp", base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))...)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = s.Query(ctx, "users/u1/sales", docstore.Where("id", "p1"))
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	docs, err = s.Query(ctx, "users/u1/sales", docstore.Where("id", "p2"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_IncrementMissingFieldIsZero(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Set(ctx, "users/u1/products/p1", map[string]any{"title": "Soap"}, false))
	require.NoError(t, s.Increment(ctx, "users/u1/products/p1", "stock", 5))
	require.NoError(t, s.Increment(ctx, "users/u1/products/p1", "stock", -8))

	doc, err := s.Get(ctx, "users/u1/products/p1")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), doc.Data["stock"], "stock may go negative, no floor is applied")
}

func TestStore_IncrementConcurrent(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "users/u1/products/p1", map[string]any{"stock": int64(0)}, false))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Increment(ctx, "users/u1/products/p1", "stock", 2)
		}()
	}
	wg.Wait()

	doc, err := s.Get(ctx, "users/u1/products/p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), doc.Data["stock"])
}

func TestStore_AddAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	id1, err := s.Add(ctx, "users/u1/dues", map[string]any{"amount": 10.0})
	require.NoError(t, err)
	id2, err := s.Add(ctx, "users/u1/dues", map[string]any{"amount": 20.0})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	docs, err := s.GetAll(ctx, "users/u1/dues")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "users/u1/products/p1", map[string]any{"title": "Soap"}, false))

	doc, err := s.Get(ctx, "users/u1/products/p1")
	require.NoError(t, err)
	doc.Data["title"] = "mutated"

	again, err := s.Get(ctx, "users/u1/products/p1")
	require.NoError(t, err)
	assert.Equal(t, "Soap", again.Data["title"])
}
