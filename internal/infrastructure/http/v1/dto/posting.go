package dto

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/catalog"
	"stockbook/internal/domain/posting"
)

// BatchItemRequest is one product line of a posting batch.
type BatchItemRequest struct {
	ProductID string `json:"id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// SalesBatchRequest posts a batch of sales.
type SalesBatchRequest struct {
	Items    []BatchItemRequest `json:"items" binding:"required"`
	SRName   string             `json:"srName"`
	PostedAt string             `json:"timestamp"`
}

// DamageBatchRequest posts a batch of damages. ReduceStock controls whether
// the damaged quantities also leave stock; a body that omits the field means
// true, so it is a pointer to tell "omitted" apart from an explicit false.
type DamageBatchRequest struct {
	Items       []BatchItemRequest `json:"items" binding:"required"`
	ReduceStock *bool              `json:"reduceStock"`
	PostedAt    string             `json:"timestamp"`
}

// ParsePostedAt parses the optional posting time, RFC 3339 or plain date.
// Empty means "now" and is left to the posting service; anything else must
// parse.
func ParsePostedAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewValidation("invalid timestamp").
		WithDetail("field", "timestamp").
		WithDetail("value", raw)
}

// ToItems resolves batch item requests against the live catalog.
func ToItems(reqs []BatchItemRequest, lookup func(productID string) (catalog.Product, error)) ([]posting.Item, error) {
	items := make([]posting.Item, 0, len(reqs))
	for _, req := range reqs {
		product, err := lookup(req.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, posting.Item{Product: product, Quantity: req.Quantity})
	}
	return items, nil
}

// ItemResultResponse is the per-item outcome of a batch.
type ItemResultResponse struct {
	Index     int    `json:"index"`
	ProductID string `json:"productId"`
	EntryID   string `json:"entryId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchResultResponse is the outcome of a posting batch.
type BatchResultResponse struct {
	Items  []ItemResultResponse `json:"items"`
	Failed int                  `json:"failed"`
}

// FromResult converts a posting result to wire form.
func FromResult(res posting.Result) BatchResultResponse {
	out := BatchResultResponse{
		Items:  make([]ItemResultResponse, 0, len(res.Items)),
		Failed: res.Failed,
	}
	for _, item := range res.Items {
		r := ItemResultResponse{
			Index:     item.Index,
			ProductID: item.ProductID,
			EntryID:   item.EntryID,
		}
		if item.Err != nil {
			r.Error = item.Err.Error()
		}
		out.Items = append(out.Items, r)
	}
	return out
}
