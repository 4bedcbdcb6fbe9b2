package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalog"
)

func TestKindStockDirection(t *testing.T) {
	assert.Equal(t, int64(-1), KindSale.StockDirection())
	assert.Equal(t, int64(-1), KindDamage.StockDirection())
	assert.Equal(t, int64(1), KindChallanLift.StockDirection())
}

func TestEntryValidate(t *testing.T) {
	ctx := context.Background()
	valid := Entry{
		ProductID: "prod-1",
		Kind:      KindSale,
		Quantity:  3,
		Timestamp: time.Now(),
	}

	t.Run("valid", func(t *testing.T) {
		e := valid
		require.NoError(t, e.Validate(ctx))
	})

	t.Run("missing product", func(t *testing.T) {
		e := valid
		e.ProductID = ""
		err := e.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		e := valid
		e.Kind = Kind("refund")
		err := e.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("zero quantity", func(t *testing.T) {
		e := valid
		e.Quantity = 0
		err := e.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidQuantity, appErr.Code)
	})

	t.Run("negative quantity", func(t *testing.T) {
		e := valid
		e.Quantity = -2
		err := e.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidQuantity, appErr.Code)
	})
}

func TestSnapshotOf(t *testing.T) {
	p := catalog.Product{
		ID:            "prod-9",
		Title:         "Soap Bar 100g",
		SKU:           "SOAP-100",
		Category:      "toiletries",
		Stock:         42,
		DealerPrice:   types.MustMoney("30.50"),
		TradePrice:    types.MustMoney("33.00"),
		RetailerPrice: types.MustMoney("36.25"),
		CtnSize:       144,
	}
	snap := SnapshotOf(p)

	assert.Equal(t, p.Title, snap.Title)
	assert.Equal(t, p.SKU, snap.SKU)
	assert.Equal(t, p.Stock, snap.Stock)
	assert.True(t, snap.TradePrice.Equal(p.TradePrice))

	// Snapshot must be detached from the live product.
	p.Stock = 0
	p.Title = "renamed"
	assert.Equal(t, int64(42), snap.Stock)
	assert.Equal(t, "Soap Bar 100g", snap.Title)
}

func TestEntryAmount(t *testing.T) {
	e := Entry{Quantity: 7}
	got := e.Amount(types.MustMoney("12.50"))
	assert.True(t, got.Equal(types.MustMoney("87.50")))
}
