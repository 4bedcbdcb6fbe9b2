package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/deliveryorder"
	"stockbook/internal/infrastructure/docstore"
)

// DeliveryOrderRepo stores DO payments in users/{uid}/do.
type DeliveryOrderRepo struct {
	store docstore.Store
}

func NewDeliveryOrderRepo(store docstore.Store) *DeliveryOrderRepo {
	return &DeliveryOrderRepo{store: store}
}

var _ deliveryorder.Repository = (*DeliveryOrderRepo)(nil)

func (r *DeliveryOrderRepo) Add(ctx context.Context, userID string, order deliveryorder.Order) (deliveryorder.Order, error) {
	id, err := r.store.Add(ctx, docstore.Collection(userID, docstore.ColDeliveryOrders), encodeOrder(order))
	if err != nil {
		return deliveryorder.Order{}, err
	}
	order.ID = id
	return order, nil
}

func (r *DeliveryOrderRepo) Report(ctx context.Context, userID string, rng daterange.Range) ([]deliveryorder.Order, error) {
	docs, err := r.store.Query(ctx, docstore.Collection(userID, docstore.ColDeliveryOrders),
		docstore.WhereRange("doDate", rng.Start, rng.End)...)
	if err != nil {
		return nil, err
	}
	out := make([]deliveryorder.Order, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeOrder(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *DeliveryOrderRepo) Delete(ctx context.Context, userID, orderID string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColDeliveryOrders, orderID))
}

func encodeOrder(o deliveryorder.Order) map[string]any {
	return map[string]any{
		"bank":          o.Bank,
		"branch":        o.Branch,
		"accountNumber": o.AccountNumber,
		"doAmount":      moneyValue(o.Amount),
		"doDate":        o.Date,
		"reference":     o.Reference,
	}
}

func decodeOrder(doc docstore.Document) deliveryorder.Order {
	d := doc.Data
	return deliveryorder.Order{
		ID:            doc.ID,
		Bank:          asString(d["bank"]),
		Branch:        asString(d["branch"]),
		AccountNumber: asString(d["accountNumber"]),
		Amount:        asMoney(d["doAmount"]),
		Date:          asTime(d["doDate"]),
		Reference:     asString(d["reference"]),
	}
}
