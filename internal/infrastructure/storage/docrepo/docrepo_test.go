package docrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/daterange"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalog"
	"stockbook/internal/domain/challan"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/notes"
	"stockbook/internal/infrastructure/docstore/memory"
)

const testUser = "user-1"

func TestProductRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(memory.New())

	p := catalog.Product{
		Title:         "Biscuit 200g",
		SKU:           "BIS-200",
		Category:      "snacks",
		Stock:         10,
		DealerPrice:   types.MustMoney("8.25"),
		TradePrice:    types.MustMoney("9.00"),
		RetailerPrice: types.MustMoney("10.50"),
		CtnSize:       24,
		IsActive:      true,
	}
	id, err := repo.Add(ctx, testUser, &p)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, testUser, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, int64(10), got.Stock)
	assert.True(t, got.DealerPrice.Equal(p.DealerPrice))
	assert.True(t, got.IsActive)
}

func TestProductRepoIncrementStock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(memory.New())

	p := catalog.Product{Title: "Juice", SKU: "J-1", Stock: 5}
	id, err := repo.Add(ctx, testUser, &p)
	require.NoError(t, err)

	require.NoError(t, repo.IncrementStock(ctx, testUser, id, -8))
	got, err := repo.GetByID(ctx, testUser, id)
	require.NoError(t, err)
	// Stock can go negative.
	assert.Equal(t, int64(-3), got.Stock)
}

func TestProductRepoGetMissing(t *testing.T) {
	repo := NewProductRepo(memory.New())
	_, err := repo.GetByID(context.Background(), testUser, "nope")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLedgerRepoQueryRange(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepo(memory.New())

	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 12, 0, 0, 0, time.UTC)
	}
	for i, d := range []int{5, 10, 20} {
		entry := ledger.Entry{
			ProductID: "p1",
			Kind:      ledger.KindSale,
			Quantity:  int64(i + 1),
			Timestamp: day(d),
			SRName:    "Rahim",
			Snapshot:  ledger.Snapshot{Title: "Biscuit", TradePrice: types.MustMoney("9.00")},
		}
		_, err := repo.Create(ctx, testUser, entry)
		require.NoError(t, err)
	}

	rng := daterange.New(day(8), day(15))
	entries, err := repo.QueryRange(ctx, testUser, ledger.KindSale, rng, ledger.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Quantity)
	assert.Equal(t, "Rahim", entries[0].SRName)
	assert.Equal(t, "Biscuit", entries[0].Snapshot.Title)
	assert.True(t, entries[0].Snapshot.TradePrice.Equal(types.MustMoney("9.00")))
}

func TestLedgerRepoFiltersByProductAndSR(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepo(memory.New())
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	for _, e := range []ledger.Entry{
		{ProductID: "p1", Kind: ledger.KindSale, Quantity: 1, Timestamp: at, SRName: "Rahim"},
		{ProductID: "p2", Kind: ledger.KindSale, Quantity: 2, Timestamp: at, SRName: "Karim"},
	} {
		_, err := repo.Create(ctx, testUser, e)
		require.NoError(t, err)
	}

	rng := daterange.New(at, at)

	byProduct, err := repo.QueryRange(ctx, testUser, ledger.KindSale, rng, ledger.Filter{ProductID: "p2"})
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "p2", byProduct[0].ProductID)

	bySR, err := repo.QueryRange(ctx, testUser, ledger.KindSale, rng, ledger.Filter{SRName: "Rahim"})
	require.NoError(t, err)
	require.Len(t, bySR, 1)
	assert.Equal(t, "p1", bySR[0].ProductID)
}

func TestLedgerRepoKindsAreSeparate(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepo(memory.New())
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, testUser, ledger.Entry{ProductID: "p1", Kind: ledger.KindSale, Quantity: 3, Timestamp: at})
	require.NoError(t, err)
	_, err = repo.Create(ctx, testUser, ledger.Entry{ProductID: "p1", Kind: ledger.KindDamage, Quantity: 7, Timestamp: at})
	require.NoError(t, err)

	rng := daterange.New(at, at)
	damages, err := repo.QueryRange(ctx, testUser, ledger.KindDamage, rng, ledger.Filter{})
	require.NoError(t, err)
	require.Len(t, damages, 1)
	assert.Equal(t, int64(7), damages[0].Quantity)
	assert.Equal(t, ledger.KindDamage, damages[0].Kind)
}

func TestChallanRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewChallanRepo(memory.New())

	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	c := challan.Challan{
		Number:    "CH-17",
		Timestamp: at,
		Items: []challan.Item{
			{ProductID: "p1", Title: "Biscuit", LiftingQuantity: 48},
			{ProductID: "p2", Title: "Juice", LiftingQuantity: 24},
		},
	}

	saved, err := repo.Save(ctx, testUser, c)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	found, err := repo.Search(ctx, testUser, daterange.New(at, at))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CH-17", found[0].Number)
	require.Len(t, found[0].Items, 2)
	assert.Equal(t, int64(48), found[0].Items[0].LiftingQuantity)

	require.NoError(t, repo.Delete(ctx, testUser, saved.ID))
	found, err = repo.Search(ctx, testUser, daterange.New(at, at))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestNoteRepoTitleKeyed(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepo(memory.New())

	first := notes.Note{Title: "route plan", Body: "visit zone 3", Timestamp: time.Now()}
	require.NoError(t, repo.Save(ctx, testUser, first))
	// Same title merges into the same note.
	second := notes.Note{Title: "route plan", Body: "visit zone 4", Timestamp: time.Now()}
	require.NoError(t, repo.Save(ctx, testUser, second))

	list, err := repo.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "visit zone 4", list[0].Body)
}
