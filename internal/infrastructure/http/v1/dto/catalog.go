package dto

import (
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalog"
)

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	Title         string  `json:"title" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	Category      string  `json:"category"`
	Stock         int64   `json:"stock"`
	DealerPrice   float64 `json:"dealerPrice" binding:"min=0"`
	TradePrice    float64 `json:"tradePrice" binding:"min=0"`
	RetailerPrice float64 `json:"retailerPrice" binding:"min=0"`
	CtnSize       int64   `json:"ctnSize" binding:"min=0"`
	IsActive      *bool   `json:"isActive"`
}

// ToDomain converts the request to a catalog product.
func (r *ProductRequest) ToDomain() catalog.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return catalog.Product{
		Title:         r.Title,
		SKU:           r.SKU,
		Category:      r.Category,
		Stock:         r.Stock,
		DealerPrice:   types.NewMoney(r.DealerPrice),
		TradePrice:    types.NewMoney(r.TradePrice),
		RetailerPrice: types.NewMoney(r.RetailerPrice),
		CtnSize:       r.CtnSize,
		IsActive:      active,
	}
}

// ProductResponse is the wire form of a product.
type ProductResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Stock         int64   `json:"stock"`
	DealerPrice   float64 `json:"dealerPrice"`
	TradePrice    float64 `json:"tradePrice"`
	RetailerPrice float64 `json:"retailerPrice"`
	CtnSize       int64   `json:"ctnSize"`
	IsActive      bool    `json:"isActive"`
}

// FromProduct converts a catalog product to its wire form.
func FromProduct(p catalog.Product) ProductResponse {
	dealer, _ := p.DealerPrice.Float64()
	trade, _ := p.TradePrice.Float64()
	retailer, _ := p.RetailerPrice.Float64()
	return ProductResponse{
		ID:            p.ID,
		Title:         p.Title,
		SKU:           p.SKU,
		Category:      p.Category,
		Stock:         p.Stock,
		DealerPrice:   dealer,
		TradePrice:    trade,
		RetailerPrice: retailer,
		CtnSize:       p.CtnSize,
		IsActive:      p.IsActive,
	}
}

// FromProducts converts a product slice to wire form.
func FromProducts(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
