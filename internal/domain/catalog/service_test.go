package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/types"
)

type fakeRepo struct {
	products map[string]Product
	nextID   int
	listErr  error
	lists    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]Product{}}
}

func (f *fakeRepo) Add(_ context.Context, _ string, p *Product) (string, error) {
	f.nextID++
	id := "p" + string(rune('0'+f.nextID))
	stored := *p
	stored.ID = id
	f.products[id] = stored
	return id, nil
}

func (f *fakeRepo) List(_ context.Context, _ string) ([]Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lists++
	out := make([]Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ string, productID string) (Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return Product{}, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, _ string, p *Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, _ string, productID string) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeRepo) IncrementStock(_ context.Context, _ string, productID string, delta int64) error {
	p, ok := f.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID)
	}
	p.Stock += delta
	f.products[productID] = p
	return nil
}

type mapCache struct {
	entries map[string][]Product
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]Product{}} }

func (c *mapCache) Get(userID string) ([]Product, bool) {
	p, ok := c.entries[userID]
	return p, ok
}
func (c *mapCache) Put(userID string, products []Product) { c.entries[userID] = products }
func (c *mapCache) Invalidate(userID string)              { delete(c.entries, userID) }

func authedCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-1"})
}

func validProduct() Product {
	return Product{
		Title:      "Biscuit 200g",
		SKU:        "BIS-200",
		TradePrice: types.MustMoney("9.00"),
		IsActive:   true,
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newMapCache())

	p := validProduct()
	require.NoError(t, svc.Create(authedCtx(), &p))
	assert.NotEmpty(t, p.ID)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newFakeRepo(), newMapCache())

	p := validProduct()
	p.Title = ""
	err := svc.Create(authedCtx(), &p)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateRequiresUser(t *testing.T) {
	svc := NewService(newFakeRepo(), newMapCache())
	p := validProduct()
	err := svc.Create(context.Background(), &p)
	require.Error(t, err)
}

func TestListUsesCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newMapCache())

	p := validProduct()
	require.NoError(t, svc.Create(authedCtx(), &p))

	_, err := svc.List(authedCtx())
	require.NoError(t, err)
	_, err = svc.List(authedCtx())
	require.NoError(t, err)
	// Second call served from cache.
	assert.Equal(t, 1, repo.lists)
}

func TestWritesInvalidateCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newMapCache()
	svc := NewService(repo, cache)

	p := validProduct()
	require.NoError(t, svc.Create(authedCtx(), &p))

	_, err := svc.List(authedCtx())
	require.NoError(t, err)
	_, cached := cache.Get("user-1")
	require.True(t, cached)

	p.Title = "Biscuit 250g"
	require.NoError(t, svc.Update(authedCtx(), &p))
	_, cached = cache.Get("user-1")
	assert.False(t, cached)
}

func TestListActiveFilters(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newMapCache())

	active := validProduct()
	require.NoError(t, svc.Create(authedCtx(), &active))

	inactive := validProduct()
	inactive.SKU = "BIS-OLD"
	inactive.IsActive = false
	require.NoError(t, svc.Create(authedCtx(), &inactive))

	got, err := svc.ListActive(authedCtx())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}

func TestDeleteKeepsNoCascade(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newMapCache())

	p := validProduct()
	require.NoError(t, svc.Create(authedCtx(), &p))
	require.NoError(t, svc.Delete(authedCtx(), p.ID))

	_, err := svc.GetByID(authedCtx(), p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("store down")
	svc := NewService(repo, newMapCache())

	_, err := svc.List(authedCtx())
	require.Error(t, err)
}
