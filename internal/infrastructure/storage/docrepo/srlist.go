package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/domain/srlist"
	"stockbook/internal/infrastructure/docstore"
)

// SRRepo stores sales representatives in users/{uid}/sr-list.
type SRRepo struct {
	store docstore.Store
}

func NewSRRepo(store docstore.Store) *SRRepo {
	return &SRRepo{store: store}
}

var _ srlist.Repository = (*SRRepo)(nil)

func (r *SRRepo) Add(ctx context.Context, userID string, rep srlist.Representative) (srlist.Representative, error) {
	id, err := r.store.Add(ctx, docstore.Collection(userID, docstore.ColSRList), map[string]any{
		"name":        rep.Name,
		"phoneNumber": rep.PhoneNumber,
		"dateOfJoin":  rep.DateOfJoin,
		"routeList":   rep.RouteList,
	})
	if err != nil {
		return srlist.Representative{}, err
	}
	rep.ID = id
	return rep, nil
}

func (r *SRRepo) List(ctx context.Context, userID string) ([]srlist.Representative, error) {
	docs, err := r.store.GetAll(ctx, docstore.Collection(userID, docstore.ColSRList))
	if err != nil {
		return nil, err
	}
	out := make([]srlist.Representative, 0, len(docs))
	for _, doc := range docs {
		out = append(out, srlist.Representative{
			ID:          doc.ID,
			Name:        asString(doc.Data["name"]),
			PhoneNumber: asString(doc.Data["phoneNumber"]),
			DateOfJoin:  asTime(doc.Data["dateOfJoin"]),
			RouteList:   asStringSlice(doc.Data["routeList"]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SRRepo) Delete(ctx context.Context, userID, repID string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColSRList, repID))
}
