// Package posting writes batches of ledger entries and applies their stock
// effects. Items in a batch are independent documents, so they are written
// concurrently; stock increments are atomic at the store level.
package posting

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/domain/catalog"
	"stockbook/internal/domain/ledger"
	"stockbook/pkg/logger"
)

// maxConcurrentWrites bounds the fan-out of a single batch.
const maxConcurrentWrites = 8

// Item is one product line of a batch.
type Item struct {
	Product  catalog.Product
	Quantity int64
}

// Input describes a batch to post. All items share the kind, timestamp and
// SR attribution.
type Input struct {
	Kind     ledger.Kind
	Items    []Item
	PostedAt time.Time

	// SRName attributes sales to a representative. Ignored for other kinds.
	SRName string

	// ReduceStock controls whether a damage batch decrements stock. Nil
	// means true: damages reduce stock unless the caller opts out. Sales
	// always decrement and lifts always increment regardless of this flag.
	ReduceStock *bool
}

func (in Input) reduceStock() bool {
	return in.ReduceStock == nil || *in.ReduceStock
}

// ItemResult reports the outcome of a single item write.
type ItemResult struct {
	Index     int
	ProductID string
	EntryID   string
	Err       error
}

// Result is the per-item outcome of a batch. Failed counts items whose
// entry write or stock adjustment did not succeed.
type Result struct {
	Items  []ItemResult
	Failed int
}

// Invalidator drops cached product listings after stock changes.
type Invalidator interface {
	Invalidate(userID string)
}

// Service posts ledger batches.
type Service struct {
	entries ledger.Repository
	stock   ledger.StockAdjuster
	cache   Invalidator
}

func NewService(entries ledger.Repository, stock ledger.StockAdjuster, cache Invalidator) *Service {
	return &Service{entries: entries, stock: stock, cache: cache}
}

// Post validates the whole batch, then writes each item concurrently. The
// batch is all-or-nothing at validation time only: once writes start, items
// succeed or fail independently and the per-item outcomes are returned in
// Result. A batch with any failed item also returns a partial-failure error
// so callers can surface which lines need re-posting.
func (s *Service) Post(ctx context.Context, input Input) (Result, error) {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return Result{}, apperror.NewUnauthorized("user context required")
	}
	if len(input.Items) == 0 {
		return Result{}, apperror.NewEmptyBatch()
	}
	if !input.Kind.IsValid() {
		return Result{}, apperror.NewValidation("invalid entry kind").
			WithDetail("kind", string(input.Kind))
	}

	postedAt := input.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}

	entries := make([]ledger.Entry, len(input.Items))
	for i, item := range input.Items {
		e := ledger.Entry{
			ProductID: item.Product.ID,
			Kind:      input.Kind,
			Quantity:  item.Quantity,
			Timestamp: postedAt,
			Snapshot:  ledger.SnapshotOf(item.Product),
		}
		if input.Kind == ledger.KindSale {
			e.SRName = input.SRName
		}
		// Reject the whole batch before any write.
		if err := e.Validate(ctx); err != nil {
			return Result{}, err
		}
		entries[i] = e
	}

	result := Result{Items: make([]ItemResult, len(entries))}

	reduceStock := input.reduceStock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)
	for i := range entries {
		i := i
		g.Go(func() error {
			result.Items[i] = s.postOne(gctx, userID, entries[i], reduceStock)
			result.Items[i].Index = i
			return nil
		})
	}
	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()

	for _, item := range result.Items {
		if item.Err != nil {
			result.Failed++
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(userID)
	}

	logger.Info(ctx, "batch posted",
		"kind", input.Kind,
		"items", len(entries),
		"failed", result.Failed)

	if result.Failed > 0 {
		return result, apperror.NewPartialPostingFailure(result.Failed, len(entries))
	}
	return result, nil
}

// postOne writes the entry document and then applies its stock effect. The
// entry write comes first so a failed increment leaves an auditable record
// rather than a silent stock drift.
func (s *Service) postOne(ctx context.Context, userID string, entry ledger.Entry, reduceStock bool) ItemResult {
	res := ItemResult{ProductID: entry.ProductID}

	created, err := s.entries.Create(ctx, userID, entry)
	if err != nil {
		res.Err = apperror.NewStoreUnavailable("create entry", err).
			WithDetail("product_id", entry.ProductID)
		return res
	}
	res.EntryID = created.ID

	if entry.Kind == ledger.KindDamage && !reduceStock {
		return res
	}

	delta := entry.Kind.StockDirection() * entry.Quantity
	if err := s.stock.IncrementStock(ctx, userID, entry.ProductID, delta); err != nil {
		logger.Error(ctx, "stock adjustment failed",
			"product_id", entry.ProductID,
			"entry_id", created.ID,
			"delta", delta,
			"error", err)
		res.Err = apperror.NewStoreUnavailable("increment stock", err).
			WithDetail("product_id", entry.ProductID).
			WithDetail("entry_id", created.ID)
	}
	return res
}

// AdjustStock applies a signed delta to one product outside of a ledger
// batch, used by challan receipts and manual corrections.
func (s *Service) AdjustStock(ctx context.Context, productID string, delta int64) error {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return apperror.NewUnauthorized("user context required")
	}
	if delta == 0 {
		return nil
	}
	if err := s.stock.IncrementStock(ctx, userID, productID, delta); err != nil {
		return apperror.NewStoreUnavailable("increment stock", err).
			WithDetail("product_id", productID)
	}
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
	return nil
}
