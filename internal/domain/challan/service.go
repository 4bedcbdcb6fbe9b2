package challan

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/domain/ledger"
	"stockbook/pkg/logger"
)

// Invalidator drops cached product listings after stock changes.
type Invalidator interface {
	Invalidate(userID string)
}

// ItemResult reports the outcome of one item's lift.
type ItemResult struct {
	Index     int
	ProductID string
	EntryID   string
	Err       error
}

// Result is the outcome of posting a challan: the saved header plus the
// per-item lift outcomes.
type Result struct {
	Challan Challan
	Items   []ItemResult
	Failed  int
}

// Service posts, searches and deletes challans. Posting lifts every item's
// quantity into stock and records a challan-lift ledger entry per item so the
// movement shows up in entry listings alongside sales and damages.
type Service struct {
	repo    Repository
	entries ledger.Repository
	stock   ledger.StockAdjuster
	cache   Invalidator
}

func NewService(repo Repository, entries ledger.Repository, stock ledger.StockAdjuster, cache Invalidator) *Service {
	return &Service{repo: repo, entries: entries, stock: stock, cache: cache}
}

func (s *Service) userID(ctx context.Context) (string, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return "", apperror.NewUnauthorized("user context required")
	}
	return uid, nil
}

// Post validates and saves the challan, then applies each item's lift. The
// header write comes first: a lift without its receipt document would be
// untraceable. Lift failures are reported per item as a partial posting so
// the caller can retry the affected items.
func (s *Service) Post(ctx context.Context, c Challan) (Result, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := c.Validate(ctx); err != nil {
		return Result{}, err
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}

	saved, err := s.repo.Save(ctx, uid, c)
	if err != nil {
		return Result{}, apperror.NewStoreUnavailable("save challan", err)
	}

	res := Result{Challan: saved, Items: make([]ItemResult, len(saved.Items))}
	for i, item := range saved.Items {
		res.Items[i] = s.liftOne(ctx, uid, saved, i, item)
		if res.Items[i].Err != nil {
			res.Failed++
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(uid)
	}

	logger.Info(ctx, "challan posted",
		"challan_id", saved.ID,
		"challan_no", saved.Number,
		"items", len(saved.Items),
		"lifted", saved.TotalLifted(),
		"failed", res.Failed)

	if res.Failed > 0 {
		return res, apperror.NewPartialPostingFailure(res.Failed, len(saved.Items))
	}
	return res, nil
}

// liftOne records the item's ledger entry and then increments stock. The
// entry write comes first, matching the posting discipline: a failed
// increment leaves an auditable record.
func (s *Service) liftOne(ctx context.Context, uid string, c Challan, index int, item Item) ItemResult {
	res := ItemResult{Index: index, ProductID: item.ProductID}

	entry := ledger.Entry{
		ProductID: item.ProductID,
		Kind:      ledger.KindChallanLift,
		Quantity:  item.LiftingQuantity,
		Timestamp: c.Timestamp,
		Snapshot: ledger.Snapshot{
			Title: item.Title,
			SKU:   item.SKU,
		},
	}
	created, err := s.entries.Create(ctx, uid, entry)
	if err != nil {
		logger.Error(ctx, "challan lift entry failed",
			"challan_id", c.ID,
			"product_id", item.ProductID,
			"error", err)
		res.Err = apperror.NewStoreUnavailable("create lift entry", err).
			WithDetail("product_id", item.ProductID)
		return res
	}
	res.EntryID = created.ID

	if err := s.stock.IncrementStock(ctx, uid, item.ProductID, item.LiftingQuantity); err != nil {
		logger.Error(ctx, "challan lift failed",
			"challan_id", c.ID,
			"product_id", item.ProductID,
			"quantity", item.LiftingQuantity,
			"error", err)
		res.Err = apperror.NewStoreUnavailable("increment stock", err).
			WithDetail("product_id", item.ProductID).
			WithDetail("entry_id", created.ID)
	}
	return res
}

// Search returns challans whose timestamp falls inside the range.
func (s *Service) Search(ctx context.Context, rng daterange.Range) ([]Challan, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if err := rng.Validate(ctx); err != nil {
		return nil, err
	}
	return s.repo.Search(ctx, uid, rng)
}

// Get returns one challan by ID.
func (s *Service) Get(ctx context.Context, challanID string) (Challan, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Challan{}, err
	}
	return s.repo.Get(ctx, uid, challanID)
}

// Delete removes a challan. Stock lifted by the challan is not reversed and
// its lift entries stay in the ledger; corrections go through a manual stock
// adjustment.
func (s *Service) Delete(ctx context.Context, challanID string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if challanID == "" {
		return apperror.NewValidation("challan id is required").
			WithDetail("field", "docId")
	}
	if err := s.repo.Delete(ctx, uid, challanID); err != nil {
		return apperror.NewDeletionFailed("challan", challanID, err)
	}
	logger.Info(ctx, "challan deleted", "challan_id", challanID)
	return nil
}
