package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/challan"
	"stockbook/internal/infrastructure/docstore"
)

// ChallanRepo stores challan headers with embedded items in
// users/{uid}/challan.
type ChallanRepo struct {
	store docstore.Store
}

func NewChallanRepo(store docstore.Store) *ChallanRepo {
	return &ChallanRepo{store: store}
}

var _ challan.Repository = (*ChallanRepo)(nil)

func (r *ChallanRepo) Save(ctx context.Context, userID string, c challan.Challan) (challan.Challan, error) {
	data := encodeChallan(c)
	if c.ID != "" {
		err := r.store.Set(ctx, docstore.Doc(userID, docstore.ColChallan, c.ID), data, true)
		return c, err
	}
	id, err := r.store.Add(ctx, docstore.Collection(userID, docstore.ColChallan), data)
	if err != nil {
		return challan.Challan{}, err
	}
	c.ID = id
	return c, nil
}

func (r *ChallanRepo) Get(ctx context.Context, userID, challanID string) (challan.Challan, error) {
	doc, err := r.store.Get(ctx, docstore.Doc(userID, docstore.ColChallan, challanID))
	if err != nil {
		return challan.Challan{}, err
	}
	return decodeChallan(doc), nil
}

func (r *ChallanRepo) Search(ctx context.Context, userID string, rng daterange.Range) ([]challan.Challan, error) {
	docs, err := r.store.Query(ctx, docstore.Collection(userID, docstore.ColChallan),
		docstore.WhereRange("timestamp", rng.Start, rng.End)...)
	if err != nil {
		return nil, err
	}
	challans := make([]challan.Challan, 0, len(docs))
	for _, doc := range docs {
		challans = append(challans, decodeChallan(doc))
	}
	sort.Slice(challans, func(i, j int) bool {
		return challans[i].Timestamp.After(challans[j].Timestamp)
	})
	return challans, nil
}

func (r *ChallanRepo) Delete(ctx context.Context, userID, challanID string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColChallan, challanID))
}

func encodeChallan(c challan.Challan) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, map[string]any{
			"id":              item.ProductID,
			"title":           item.Title,
			"sku":             item.SKU,
			"liftingQuantity": item.LiftingQuantity,
		})
	}
	return map[string]any{
		"challanNo": c.Number,
		"timestamp": c.Timestamp,
		"items":     items,
	}
}

func decodeChallan(doc docstore.Document) challan.Challan {
	d := doc.Data
	c := challan.Challan{
		ID:        doc.ID,
		Number:    asString(d["challanNo"]),
		Timestamp: asTime(d["timestamp"]),
	}
	for _, raw := range asMapSlice(d["items"]) {
		c.Items = append(c.Items, challan.Item{
			ProductID:       asString(raw["id"]),
			Title:           asString(raw["title"]),
			SKU:             asString(raw["sku"]),
			LiftingQuantity: asInt64(raw["liftingQuantity"]),
		})
	}
	return c
}
