package reports

import (
	"context"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/ledger"
	"stockbook/pkg/logger"
)

// Service builds reports from the ledger. Store read failures degrade to an
// empty report rather than an error: a report screen with no rows is the
// expected rendering of an unreachable range.
type Service struct {
	entries ledger.Repository
}

func NewService(entries ledger.Repository) *Service {
	return &Service{entries: entries}
}

func (s *Service) userID(ctx context.Context) (string, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return "", apperror.NewUnauthorized("user context required")
	}
	return uid, nil
}

// query fetches entries for the range, degrading read failures to empty.
func (s *Service) query(ctx context.Context, userID string, kind ledger.Kind, rng daterange.Range, filter ledger.Filter) []ledger.Entry {
	entries, err := s.entries.QueryRange(ctx, userID, kind, rng, filter)
	if err != nil {
		logger.Warn(ctx, "report query failed, returning empty",
			"kind", kind,
			"from", rng.Start,
			"to", rng.End,
			"error", err)
		return nil
	}
	return entries
}

// Sales aggregates all sales in the range at trade price.
func (s *Service) Sales(ctx context.Context, rng daterange.Range) (Report, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Report{}, err
	}
	if err := rng.Validate(ctx); err != nil {
		return Report{}, err
	}
	entries := s.query(ctx, uid, ledger.KindSale, rng, ledger.Filter{})
	return Aggregate(rng, entries, TradePrice), nil
}

// Product aggregates one product's sales in the range at trade price.
func (s *Service) Product(ctx context.Context, rng daterange.Range, productID string) (Report, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Report{}, err
	}
	if productID == "" {
		return Report{}, apperror.NewValidation("productId is required").
			WithDetail("field", "productId")
	}
	if err := rng.Validate(ctx); err != nil {
		return Report{}, err
	}
	entries := s.query(ctx, uid, ledger.KindSale, rng, ledger.Filter{ProductID: productID})
	return Aggregate(rng, entries, TradePrice), nil
}

// SR aggregates one sales representative's sales in the range at trade
// price.
func (s *Service) SR(ctx context.Context, rng daterange.Range, srName string) (Report, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Report{}, err
	}
	if srName == "" {
		return Report{}, apperror.NewValidation("srName is required").
			WithDetail("field", "srName")
	}
	if err := rng.Validate(ctx); err != nil {
		return Report{}, err
	}
	entries := s.query(ctx, uid, ledger.KindSale, rng, ledger.Filter{SRName: srName})
	return Aggregate(rng, entries, TradePrice), nil
}

// Damage aggregates damages in the range at dealer price. Duplicate entry
// documents are dropped before aggregation.
func (s *Service) Damage(ctx context.Context, rng daterange.Range) (Report, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Report{}, err
	}
	if err := rng.Validate(ctx); err != nil {
		return Report{}, err
	}
	entries := s.query(ctx, uid, ledger.KindDamage, rng, ledger.Filter{})
	return Aggregate(rng, Dedupe(entries), DealerPrice), nil
}

// Entries returns the raw ledger rows of the range, newest first, for the
// report management screens that list and delete individual records.
func (s *Service) Entries(ctx context.Context, kind ledger.Kind, rng daterange.Range) ([]ledger.Entry, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, apperror.NewValidation("invalid entry kind").
			WithDetail("kind", string(kind))
	}
	if err := rng.Validate(ctx); err != nil {
		return nil, err
	}
	return s.entries.QueryRange(ctx, uid, kind, rng, ledger.Filter{})
}
