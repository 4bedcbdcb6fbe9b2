// Package ledger provides the immutable transactional record shared by
// sales, damage, and challan-lift postings.
package ledger

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalog"
)

// Kind discriminates the variant of a ledger entry.
type Kind string

const (
	KindSale        Kind = "sale"
	KindDamage      Kind = "damage"
	KindChallanLift Kind = "challan-lift"
)

// IsValid reports whether k is a known entry kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindSale, KindDamage, KindChallanLift:
		return true
	}
	return false
}

// StockDirection returns the sign the entry kind applies to product stock:
// sales and damages consume stock, challan lifts receive it.
func (k Kind) StockDirection() int64 {
	if k == KindChallanLift {
		return 1
	}
	return -1
}

// Snapshot freezes the product fields an entry needs to stay independently
// reportable. Historical reports never re-join the live product table, so a
// later price edit or product deletion cannot rewrite the past.
type Snapshot struct {
	Title         string      `json:"title"`
	SKU           string      `json:"sku"`
	Category      string      `json:"category"`
	Stock         int64       `json:"stock"`
	DealerPrice   types.Money `json:"dealerPrice"`
	TradePrice    types.Money `json:"tradePrice"`
	RetailerPrice types.Money `json:"retailerPrice"`
	CtnSize       int64       `json:"ctnSize"`
}

// SnapshotOf captures the reportable fields of a product at posting time.
func SnapshotOf(p catalog.Product) Snapshot {
	return Snapshot{
		Title:         p.Title,
		SKU:           p.SKU,
		Category:      p.Category,
		Stock:         p.Stock,
		DealerPrice:   p.DealerPrice,
		TradePrice:    p.TradePrice,
		RetailerPrice: p.RetailerPrice,
		CtnSize:       p.CtnSize,
	}
}

// Entry is one unit of inventory movement. Append-only: entries are created
// at posting time, never mutated, and removed only by explicit report
// management actions.
type Entry struct {
	// ID is the store-assigned document ID, set once persisted.
	ID string `json:"docId,omitempty"`

	// ProductID references the product the movement applies to. The
	// reference may dangle after a product deletion; the snapshot keeps the
	// entry reportable regardless.
	ProductID string `json:"id"`

	Kind      Kind      `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`

	// SRName attributes a sale to a sales representative. Only meaningful
	// for KindSale.
	SRName string `json:"srName,omitempty"`

	Snapshot Snapshot `json:"snapshot"`
}

// Validate checks entry invariants before posting. Quantity must be strictly
// positive: the editing flows drop an item once its quantity resets to zero,
// so a zero or negative quantity here is always a caller bug.
func (e *Entry) Validate(ctx context.Context) error {
	if e.ProductID == "" {
		return apperror.NewValidation("productId is required").
			WithDetail("field", "productId")
	}
	if !e.Kind.IsValid() {
		return apperror.NewValidation("invalid entry kind").
			WithDetail("field", "kind").
			WithDetail("value", string(e.Kind))
	}
	if e.Quantity <= 0 {
		return apperror.NewInvalidQuantity(e.ProductID, e.Quantity)
	}
	return nil
}

// Amount values the entry at the given unit price.
func (e *Entry) Amount(unitPrice types.Money) types.Money {
	return types.MulQuantity(unitPrice, e.Quantity)
}
