package docrepo

import (
	"context"
	"sort"

	"stockbook/internal/domain/audit"
	"stockbook/internal/infrastructure/docstore"
)

// AuditRepo stores audit records in users/{uid}/audit.
type AuditRepo struct {
	store docstore.Store
}

func NewAuditRepo(store docstore.Store) *AuditRepo {
	return &AuditRepo{store: store}
}

var _ audit.Repository = (*AuditRepo)(nil)

func (r *AuditRepo) Append(ctx context.Context, userID string, rec audit.Record) (audit.Record, error) {
	id, err := r.store.Add(ctx, docstore.Collection(userID, docstore.ColAudit), map[string]any{
		"action":    string(rec.Action),
		"entity":    rec.Entity,
		"entityId":  rec.EntityID,
		"timestamp": rec.Timestamp,
		"payload":   rec.Payload,
	})
	if err != nil {
		return audit.Record{}, err
	}
	rec.ID = id
	return rec, nil
}

func (r *AuditRepo) List(ctx context.Context, userID string, limit int) ([]audit.Record, error) {
	docs, err := r.store.GetAll(ctx, docstore.Collection(userID, docstore.ColAudit))
	if err != nil {
		return nil, err
	}
	out := make([]audit.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, audit.Record{
			ID:        doc.ID,
			Action:    audit.Action(asString(doc.Data["action"])),
			Entity:    asString(doc.Data["entity"]),
			EntityID:  asString(doc.Data["entityId"]),
			Timestamp: asTime(doc.Data["timestamp"]),
			Payload:   asString(doc.Data["payload"]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
