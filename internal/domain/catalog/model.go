// Package catalog provides the product catalog: the per-tenant set of
// products and their current stock levels.
package catalog

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// Product is one catalog item. Stock is the live on-hand quantity and is
// mutated only through atomic increments issued by posting flows; every other
// field changes only through explicit edits.
//
// Stock carries no floor: damages and sales can drive it negative, matching
// the source system's behavior. Reports read historical snapshots, so a
// negative live stock never corrupts past data.
type Product struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	SKU           string      `json:"sku"`
	Category      string      `json:"category"`
	Stock         int64       `json:"stock"`
	DealerPrice   types.Money `json:"dealerPrice"`
	TradePrice    types.Money `json:"tradePrice"`
	RetailerPrice types.Money `json:"retailerPrice"`
	CtnSize       int64       `json:"ctnSize"`
	IsActive      bool        `json:"isActive"`
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if p.DealerPrice.IsNegative() || p.TradePrice.IsNegative() || p.RetailerPrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "prices")
	}
	if p.CtnSize < 0 {
		return apperror.NewValidation("ctnSize cannot be negative").
			WithDetail("field", "ctnSize")
	}
	return nil
}
