package ledger

import (
	"context"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

// Service handles ledger entry lifecycle outside of posting: lookups for
// report management and individual deletion.
type Service struct {
	repo  Repository
	stock StockAdjuster

	// compensateOnDelete re-adds a sale's or damage's quantity to stock when
	// the entry is deleted (and subtracts a lift's). Disabled by default:
	// deletion is a report-management action, and physical stock usually
	// needs a manual correction anyway.
	compensateOnDelete bool
}

// Option configures a Service.
type Option func(*Service)

// WithStockCompensation makes deletions reverse the entry's original stock
// effect.
func WithStockCompensation() Option {
	return func(s *Service) { s.compensateOnDelete = true }
}

func NewService(repo Repository, stock StockAdjuster, opts ...Option) *Service {
	s := &Service{repo: repo, stock: stock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delete removes one entry. With compensation enabled, stock is adjusted by
// the inverse of the entry's original effect; the entry row is removed first
// so a failed compensation never resurrects it.
func (s *Service) Delete(ctx context.Context, kind Kind, entry Entry) error {
	userID := appctx.GetUserID(ctx)
	if userID == "" {
		return apperror.NewUnauthorized("user not authenticated")
	}
	if entry.ID == "" {
		return apperror.NewValidation("entry id is required").
			WithDetail("field", "docId")
	}

	if err := s.repo.Delete(ctx, userID, kind, entry.ID); err != nil {
		return apperror.NewDeletionFailed(string(kind), entry.ID, err)
	}

	logger.Info(ctx, "ledger entry deleted",
		"kind", kind,
		"entry_id", entry.ID,
		"product_id", entry.ProductID)

	if s.compensateOnDelete && entry.Quantity > 0 {
		delta := -kind.StockDirection() * entry.Quantity
		if err := s.stock.IncrementStock(ctx, userID, entry.ProductID, delta); err != nil {
			// Entry is already gone; surface the half-applied state.
			logger.Error(ctx, "stock compensation failed after deletion",
				"entry_id", entry.ID,
				"product_id", entry.ProductID,
				"delta", delta,
				"error", err)
			return apperror.NewDeletionFailed(string(kind), entry.ID, err)
		}
	}
	return nil
}
