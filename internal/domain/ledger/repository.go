package ledger

import (
	"context"

	"stockbook/internal/core/daterange"
)

// Filter narrows a range query. Zero values mean no constraint.
type Filter struct {
	ProductID string
	SRName    string
}

// Repository persists ledger entries per user, partitioned by kind.
type Repository interface {
	// Create stores the entry and returns it with its assigned ID.
	Create(ctx context.Context, userID string, entry Entry) (Entry, error)
	// QueryRange returns entries of the given kind whose timestamp falls
	// inside the range, newest first.
	QueryRange(ctx context.Context, userID string, kind Kind, rng daterange.Range, filter Filter) ([]Entry, error)
	// Delete removes a single entry by ID.
	Delete(ctx context.Context, userID string, kind Kind, entryID string) error
}

// StockAdjuster applies a signed delta to a product's stock counter.
// Satisfied by the catalog repository.
type StockAdjuster interface {
	IncrementStock(ctx context.Context, userID, productID string, delta int64) error
}
