package challan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/ledger"
)

type fakeRepo struct {
	saved   []Challan
	deleted []string
	saveErr error
}

func (f *fakeRepo) Save(_ context.Context, _ string, c Challan) (Challan, error) {
	if f.saveErr != nil {
		return Challan{}, f.saveErr
	}
	c.ID = "ch-1"
	f.saved = append(f.saved, c)
	return c, nil
}

func (f *fakeRepo) Get(_ context.Context, _, id string) (Challan, error) {
	for _, c := range f.saved {
		if c.ID == id {
			return c, nil
		}
	}
	return Challan{}, apperror.NewNotFound("challan", id)
}

func (f *fakeRepo) Search(context.Context, string, daterange.Range) ([]Challan, error) {
	return f.saved, nil
}

func (f *fakeRepo) Delete(_ context.Context, _, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEntryRepo struct {
	entries []ledger.Entry
	next    int

	// failFor makes Create fail for the given product IDs.
	failFor map[string]bool
}

func (f *fakeEntryRepo) Create(_ context.Context, _ string, entry ledger.Entry) (ledger.Entry, error) {
	if f.failFor[entry.ProductID] {
		return ledger.Entry{}, errors.New("store down")
	}
	f.next++
	entry.ID = "lift-" + string(rune('a'+f.next-1))
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeEntryRepo) QueryRange(context.Context, string, ledger.Kind, daterange.Range, ledger.Filter) ([]ledger.Entry, error) {
	return f.entries, nil
}

func (f *fakeEntryRepo) Delete(context.Context, string, ledger.Kind, string) error {
	return nil
}

type fakeStock struct {
	deltas  map[string]int64
	failFor map[string]bool
}

func (f *fakeStock) IncrementStock(_ context.Context, _ string, productID string, delta int64) error {
	if f.failFor[productID] {
		return errors.New("increment failed")
	}
	if f.deltas == nil {
		f.deltas = map[string]int64{}
	}
	f.deltas[productID] += delta
	return nil
}

func authedCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-1"})
}

func testChallan() Challan {
	return Challan{
		Number:    "CH-2024-017",
		Timestamp: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Items: []Item{
			{ProductID: "p1", Title: "Biscuit", SKU: "sku-1", LiftingQuantity: 48},
			{ProductID: "p2", Title: "Juice", SKU: "sku-2", LiftingQuantity: 24},
		},
	}
}

func TestPostLiftsStock(t *testing.T) {
	repo := &fakeRepo{}
	stock := &fakeStock{}
	svc := NewService(repo, &fakeEntryRepo{}, stock, nil)

	res, err := svc.Post(authedCtx(), testChallan())
	require.NoError(t, err)
	assert.Equal(t, "ch-1", res.Challan.ID)
	assert.Equal(t, int64(48), stock.deltas["p1"])
	assert.Equal(t, int64(24), stock.deltas["p2"])
	assert.Equal(t, int64(72), res.Challan.TotalLifted())
}

func TestPostRecordsLiftEntries(t *testing.T) {
	entries := &fakeEntryRepo{}
	svc := NewService(&fakeRepo{}, entries, &fakeStock{}, nil)

	res, err := svc.Post(authedCtx(), testChallan())
	require.NoError(t, err)

	// Each item leaves a challan-lift ledger entry for the entries listing.
	require.Len(t, entries.entries, 2)
	for i, e := range entries.entries {
		assert.Equal(t, ledger.KindChallanLift, e.Kind)
		assert.Equal(t, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), e.Timestamp)
		assert.NotEmpty(t, e.Snapshot.Title)
		assert.Equal(t, res.Items[i].EntryID, e.ID)
	}
	assert.Equal(t, "p1", entries.entries[0].ProductID)
	assert.Equal(t, int64(48), entries.entries[0].Quantity)
}

func TestPostValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeEntryRepo{}, &fakeStock{}, nil)

	t.Run("missing number", func(t *testing.T) {
		c := testChallan()
		c.Number = ""
		_, err := svc.Post(authedCtx(), c)
		require.Error(t, err)
	})

	t.Run("no items", func(t *testing.T) {
		c := testChallan()
		c.Items = nil
		_, err := svc.Post(authedCtx(), c)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeEmptyBatch, appErr.Code)
	})

	t.Run("zero lift", func(t *testing.T) {
		c := testChallan()
		c.Items[0].LiftingQuantity = 0
		_, err := svc.Post(authedCtx(), c)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidQuantity, appErr.Code)
	})
}

func TestPostPartialLiftFailure(t *testing.T) {
	repo := &fakeRepo{}
	stock := &fakeStock{failFor: map[string]bool{"p2": true}}
	svc := NewService(repo, &fakeEntryRepo{}, stock, nil)

	res, err := svc.Post(authedCtx(), testChallan())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePartialPostingFailure, appErr.Code)

	// Header persisted, successful lift applied, the failed item identified.
	assert.Equal(t, "ch-1", res.Challan.ID)
	assert.Equal(t, int64(48), stock.deltas["p1"])
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Items, 2)
	assert.NoError(t, res.Items[0].Err)
	assert.Error(t, res.Items[1].Err)
	assert.Equal(t, "p2", res.Items[1].ProductID)
}

func TestPostEntryFailureSkipsLift(t *testing.T) {
	entries := &fakeEntryRepo{failFor: map[string]bool{"p1": true}}
	stock := &fakeStock{}
	svc := NewService(&fakeRepo{}, entries, stock, nil)

	res, err := svc.Post(authedCtx(), testChallan())
	require.Error(t, err)
	assert.Equal(t, 1, res.Failed)
	// No entry, no stock movement for that item; the other item lands.
	_, touched := stock.deltas["p1"]
	assert.False(t, touched)
	assert.Equal(t, int64(24), stock.deltas["p2"])
}

func TestPostSaveFailureSkipsLifts(t *testing.T) {
	entries := &fakeEntryRepo{}
	stock := &fakeStock{}
	svc := NewService(&fakeRepo{saveErr: errors.New("store down")}, entries, stock, nil)

	_, err := svc.Post(authedCtx(), testChallan())
	require.Error(t, err)
	assert.Empty(t, stock.deltas)
	assert.Empty(t, entries.entries)
}

func TestDeleteDoesNotReverseStock(t *testing.T) {
	repo := &fakeRepo{}
	stock := &fakeStock{}
	svc := NewService(repo, &fakeEntryRepo{}, stock, nil)

	res, err := svc.Post(authedCtx(), testChallan())
	require.NoError(t, err)

	before := stock.deltas["p1"]
	require.NoError(t, svc.Delete(authedCtx(), res.Challan.ID))
	assert.Equal(t, []string{"ch-1"}, repo.deleted)
	assert.Equal(t, before, stock.deltas["p1"])
}
