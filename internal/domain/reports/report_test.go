package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
)

func mustRange(t *testing.T, from, to string) daterange.Range {
	t.Helper()
	start, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	return daterange.New(start, end)
}

func saleEntry(id, productID, title string, qty int64, trade string) ledger.Entry {
	return ledger.Entry{
		ID:        id,
		ProductID: productID,
		Kind:      ledger.KindSale,
		Quantity:  qty,
		Snapshot: ledger.Snapshot{
			Title:       title,
			SKU:         "sku-" + productID,
			TradePrice:  types.MustMoney(trade),
			DealerPrice: types.MustMoney("1.00"),
			Stock:       100,
		},
	}
}

func TestAggregateGroupsByProduct(t *testing.T) {
	rng := mustRange(t, "2024-05-01", "2024-05-31")
	entries := []ledger.Entry{
		saleEntry("e1", "p1", "Biscuit", 5, "10.00"),
		saleEntry("e2", "p2", "Apple Juice", 2, "25.00"),
		saleEntry("e3", "p1", "Biscuit", 3, "10.00"),
	}

	report := Aggregate(rng, entries, TradePrice)

	require.Len(t, report.Lines, 2)
	// Sorted by title.
	assert.Equal(t, "Apple Juice", report.Lines[0].Title)
	assert.Equal(t, "Biscuit", report.Lines[1].Title)

	biscuit := report.Lines[1]
	assert.Equal(t, int64(8), biscuit.Quantity)
	assert.True(t, biscuit.Amount.Equal(types.MustMoney("80.00")))

	assert.Equal(t, int64(10), report.TotalQuantity)
	assert.True(t, report.TotalAmount.Equal(types.MustMoney("130.00")))
}

func TestAggregateFirstSeenSnapshotWins(t *testing.T) {
	rng := mustRange(t, "2024-05-01", "2024-05-31")
	entries := []ledger.Entry{
		saleEntry("e1", "p1", "Biscuit", 5, "10.00"),
		// Price and title changed mid-range; product must not split.
		saleEntry("e2", "p1", "Biscuit New", 5, "12.00"),
	}

	report := Aggregate(rng, entries, TradePrice)

	require.Len(t, report.Lines, 1)
	assert.Equal(t, "Biscuit", report.Lines[0].Title)
	assert.True(t, report.Lines[0].UnitPrice.Equal(types.MustMoney("10.00")))
	// Both quantities valued at the first-seen price.
	assert.True(t, report.Lines[0].Amount.Equal(types.MustMoney("100.00")))
}

func TestAggregateEmpty(t *testing.T) {
	rng := mustRange(t, "2024-05-01", "2024-05-31")
	report := Aggregate(rng, nil, TradePrice)
	assert.Empty(t, report.Lines)
	assert.Zero(t, report.TotalQuantity)
	assert.True(t, report.TotalAmount.IsZero())
}

func TestDedupe(t *testing.T) {
	entries := []ledger.Entry{
		saleEntry("e1", "p1", "Biscuit", 5, "10.00"),
		saleEntry("e1", "p1", "Biscuit", 5, "10.00"),
		saleEntry("e2", "p1", "Biscuit", 3, "10.00"),
		{ProductID: "p2", Kind: ledger.KindDamage, Quantity: 1},
	}
	out := Dedupe(entries)
	require.Len(t, out, 3)
	assert.Equal(t, "e1", out[0].ID)
	assert.Equal(t, "e2", out[1].ID)
}

type fakeLedger struct {
	entries    []ledger.Entry
	lastKind   ledger.Kind
	lastFilter ledger.Filter
	err        error
}

func (f *fakeLedger) Create(_ context.Context, _ string, e ledger.Entry) (ledger.Entry, error) {
	return e, nil
}

func (f *fakeLedger) QueryRange(_ context.Context, _ string, kind ledger.Kind, _ daterange.Range, filter ledger.Filter) ([]ledger.Entry, error) {
	f.lastKind = kind
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func (f *fakeLedger) Delete(context.Context, string, ledger.Kind, string) error { return nil }

func authedCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-1"})
}

func TestServiceSalesSwallowsReadErrors(t *testing.T) {
	repo := &fakeLedger{err: errors.New("store down")}
	svc := NewService(repo)

	report, err := svc.Sales(authedCtx(), mustRange(t, "2024-05-01", "2024-05-31"))
	require.NoError(t, err)
	assert.Empty(t, report.Lines)
	assert.True(t, report.TotalAmount.IsZero())
}

func TestServiceSRPassesFilter(t *testing.T) {
	repo := &fakeLedger{entries: []ledger.Entry{saleEntry("e1", "p1", "Biscuit", 2, "10.00")}}
	svc := NewService(repo)

	report, err := svc.SR(authedCtx(), mustRange(t, "2024-05-01", "2024-05-31"), "Rahim")
	require.NoError(t, err)
	assert.Equal(t, "Rahim", repo.lastFilter.SRName)
	assert.Equal(t, ledger.KindSale, repo.lastKind)
	require.Len(t, report.Lines, 1)

	_, err = svc.SR(authedCtx(), mustRange(t, "2024-05-01", "2024-05-31"), "")
	require.Error(t, err)
}

func TestServiceDamageValuesAtDealerPrice(t *testing.T) {
	damaged := ledger.Entry{
		ID:        "d1",
		ProductID: "p1",
		Kind:      ledger.KindDamage,
		Quantity:  4,
		Snapshot: ledger.Snapshot{
			Title:       "Biscuit",
			TradePrice:  types.MustMoney("10.00"),
			DealerPrice: types.MustMoney("8.00"),
		},
	}
	repo := &fakeLedger{entries: []ledger.Entry{damaged, damaged}}
	svc := NewService(repo)

	report, err := svc.Damage(authedCtx(), mustRange(t, "2024-05-01", "2024-05-31"))
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	// Duplicate document counted once, at dealer price.
	assert.Equal(t, int64(4), report.Lines[0].Quantity)
	assert.True(t, report.TotalAmount.Equal(types.MustMoney("32.00")))
}

func TestServiceRejectsUnauthenticated(t *testing.T) {
	svc := NewService(&fakeLedger{})
	_, err := svc.Sales(context.Background(), mustRange(t, "2024-05-01", "2024-05-31"))
	require.Error(t, err)
}

func TestServiceEntriesRejectsInvalidKind(t *testing.T) {
	svc := NewService(&fakeLedger{})
	_, err := svc.Entries(authedCtx(), ledger.Kind("bogus"), mustRange(t, "2024-05-01", "2024-05-31"))
	require.Error(t, err)
}
