package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/dues"
	"stockbook/internal/infrastructure/docstore"
)

// DueRepo stores dues in users/{uid}/dues.
type DueRepo struct {
	store docstore.Store
}

func NewDueRepo(store docstore.Store) *DueRepo {
	return &DueRepo{store: store}
}

var _ dues.Repository = (*DueRepo)(nil)

func (r *DueRepo) Add(ctx context.Context, userID string, due dues.Due) (dues.Due, error) {
	id, err := r.store.Add(ctx, docstore.Collection(userID, docstore.ColDues), encodeDue(due))
	if err != nil {
		return dues.Due{}, err
	}
	due.ID = id
	return due, nil
}

func (r *DueRepo) Report(ctx context.Context, userID string, rng daterange.Range) ([]dues.Due, error) {
	docs, err := r.store.Query(ctx, docstore.Collection(userID, docstore.ColDues),
		docstore.WhereRange("dueDate", rng.Start, rng.End)...)
	if err != nil {
		return nil, err
	}
	out := make([]dues.Due, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeDue(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *DueRepo) Update(ctx context.Context, userID string, due dues.Due) error {
	return r.store.Update(ctx, docstore.Doc(userID, docstore.ColDues, due.ID), encodeDue(due))
}

func (r *DueRepo) Delete(ctx context.Context, userID, dueID string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColDues, dueID))
}

func encodeDue(d dues.Due) map[string]any {
	data := map[string]any{
		"outletName": d.OutletName,
		"routeName":  d.RouteName,
		"owner":      d.Owner,
		"amount":     moneyValue(d.Amount),
		"reference":  d.Reference,
		"status":     d.Status,
		"dueDate":    d.DueDate,
	}
	if !d.CollectionDate.IsZero() {
		data["collectionDate"] = d.CollectionDate
	}
	return data
}

func decodeDue(doc docstore.Document) dues.Due {
	d := doc.Data
	return dues.Due{
		ID:             doc.ID,
		OutletName:     asString(d["outletName"]),
		RouteName:      asString(d["routeName"]),
		Owner:          asString(d["owner"]),
		Amount:         asMoney(d["amount"]),
		Reference:      asString(d["reference"]),
		Status:         asString(d["status"]),
		DueDate:        asTime(d["dueDate"]),
		CollectionDate: asTime(d["collectionDate"]),
	}
}
