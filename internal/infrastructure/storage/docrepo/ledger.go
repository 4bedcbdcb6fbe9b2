package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/infrastructure/docstore"
)

// LedgerRepo stores ledger entries, one collection per kind.
type LedgerRepo struct {
	store docstore.Store
}

func NewLedgerRepo(store docstore.Store) *LedgerRepo {
	return &LedgerRepo{store: store}
}

var _ ledger.Repository = (*LedgerRepo)(nil)

func kindCollection(kind ledger.Kind) (string, error) {
	switch kind {
	case ledger.KindSale:
		return docstore.ColSales, nil
	case ledger.KindDamage:
		return docstore.ColDamages, nil
	case ledger.KindChallanLift:
		return docstore.ColLifts, nil
	}
	return "", apperror.NewValidation("unknown entry kind").
		WithDetail("kind", string(kind))
}

func (r *LedgerRepo) Create(ctx context.Context, userID string, entry ledger.Entry) (ledger.Entry, error) {
	col, err := kindCollection(entry.Kind)
	if err != nil {
		return ledger.Entry{}, err
	}
	id, err := r.store.Add(ctx, docstore.Collection(userID, col), encodeEntry(entry))
	if err != nil {
		return ledger.Entry{}, err
	}
	entry.ID = id
	return entry, nil
}

func (r *LedgerRepo) QueryRange(ctx context.Context, userID string, kind ledger.Kind, rng daterange.Range, filter ledger.Filter) ([]ledger.Entry, error) {
	col, err := kindCollection(kind)
	if err != nil {
		return nil, err
	}

	filters := docstore.WhereRange("timestamp", rng.Start, rng.End)
	if filter.ProductID != "" {
		filters = append(filters, docstore.Where("id", filter.ProductID))
	}
	if filter.SRName != "" {
		filters = append(filters, docstore.Where("srName", filter.SRName))
	}

	docs, err := r.store.Query(ctx, docstore.Collection(userID, col), filters...)
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, decodeEntry(doc, kind))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (r *LedgerRepo) Delete(ctx context.Context, userID string, kind ledger.Kind, entryID string) error {
	col, err := kindCollection(kind)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, docstore.Doc(userID, col, entryID))
}

// Entry documents keep the source system's flat field names: the product
// reference is "id" and the quantity field is per kind.
func encodeEntry(e ledger.Entry) map[string]any {
	data := map[string]any{
		"id":        e.ProductID,
		"timestamp": e.Timestamp,

		"title":         e.Snapshot.Title,
		"sku":           e.Snapshot.SKU,
		"category":      e.Snapshot.Category,
		"stock":         e.Snapshot.Stock,
		"dealerPrice":   moneyValue(e.Snapshot.DealerPrice),
		"tradePrice":    moneyValue(e.Snapshot.TradePrice),
		"retailerPrice": moneyValue(e.Snapshot.RetailerPrice),
		"ctnSize":       e.Snapshot.CtnSize,
	}
	switch e.Kind {
	case ledger.KindSale:
		data["salesQuantity"] = e.Quantity
		if e.SRName != "" {
			data["srName"] = e.SRName
		}
	case ledger.KindDamage:
		data["damageQuantity"] = e.Quantity
	default:
		data["liftingQuantity"] = e.Quantity
	}
	return data
}

func decodeEntry(doc docstore.Document, kind ledger.Kind) ledger.Entry {
	d := doc.Data
	entry := ledger.Entry{
		ID:        doc.ID,
		ProductID: asString(d["id"]),
		Kind:      kind,
		Timestamp: asTime(d["timestamp"]),
		SRName:    asString(d["srName"]),
		Snapshot: ledger.Snapshot{
			Title:         asString(d["title"]),
			SKU:           asString(d["sku"]),
			Category:      asString(d["category"]),
			Stock:         asInt64(d["stock"]),
			DealerPrice:   asMoney(d["dealerPrice"]),
			TradePrice:    asMoney(d["tradePrice"]),
			RetailerPrice: asMoney(d["retailerPrice"]),
			CtnSize:       asInt64(d["ctnSize"]),
		},
	}
	switch kind {
	case ledger.KindSale:
		entry.Quantity = asInt64(d["salesQuantity"])
	case ledger.KindDamage:
		entry.Quantity = asInt64(d["damageQuantity"])
	default:
		entry.Quantity = asInt64(d["liftingQuantity"])
	}
	return entry
}
