package docrepo

import (
	"context"

	"stockbook/internal/domain/catalog"
	"stockbook/internal/infrastructure/docstore"
)

// ProductRepo stores products in users/{uid}/products.
type ProductRepo struct {
	store docstore.Store
}

func NewProductRepo(store docstore.Store) *ProductRepo {
	return &ProductRepo{store: store}
}

var _ catalog.Repository = (*ProductRepo)(nil)

func (r *ProductRepo) Add(ctx context.Context, userID string, p *catalog.Product) (string, error) {
	return r.store.Add(ctx, docstore.Collection(userID, docstore.ColProducts), encodeProduct(p))
}

func (r *ProductRepo) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	docs, err := r.store.GetAll(ctx, docstore.Collection(userID, docstore.ColProducts))
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, decodeProduct(doc))
	}
	return products, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, userID, productID string) (catalog.Product, error) {
	doc, err := r.store.Get(ctx, docstore.Doc(userID, docstore.ColProducts, productID))
	if err != nil {
		return catalog.Product{}, err
	}
	return decodeProduct(doc), nil
}

func (r *ProductRepo) Update(ctx context.Context, userID string, p *catalog.Product) error {
	return r.store.Update(ctx, docstore.Doc(userID, docstore.ColProducts, p.ID), encodeProduct(p))
}

func (r *ProductRepo) Delete(ctx context.Context, userID, productID string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColProducts, productID))
}

func (r *ProductRepo) IncrementStock(ctx context.Context, userID, productID string, delta int64) error {
	return r.store.Increment(ctx, docstore.Doc(userID, docstore.ColProducts, productID), "stock", delta)
}

func encodeProduct(p *catalog.Product) map[string]any {
	return map[string]any{
		"title":         p.Title,
		"sku":           p.SKU,
		"category":      p.Category,
		"stock":         p.Stock,
		"dealerPrice":   moneyValue(p.DealerPrice),
		"tradePrice":    moneyValue(p.TradePrice),
		"retailerPrice": moneyValue(p.RetailerPrice),
		"ctnSize":       p.CtnSize,
		"isActive":      p.IsActive,
	}
}

func decodeProduct(doc docstore.Document) catalog.Product {
	d := doc.Data
	return catalog.Product{
		ID:            doc.ID,
		Title:         asString(d["title"]),
		SKU:           asString(d["sku"]),
		Category:      asString(d["category"]),
		Stock:         asInt64(d["stock"]),
		DealerPrice:   asMoney(d["dealerPrice"]),
		TradePrice:    asMoney(d["tradePrice"]),
		RetailerPrice: asMoney(d["retailerPrice"]),
		CtnSize:       asInt64(d["ctnSize"]),
		IsActive:      asBool(d["isActive"]),
	}
}
