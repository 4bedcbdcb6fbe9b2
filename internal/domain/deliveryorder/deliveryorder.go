// Package deliveryorder records DO payments made to the dealer's bank.
package deliveryorder

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/core/types"
	"stockbook/pkg/logger"
)

// Order is one delivery order payment.
type Order struct {
	ID            string      `json:"docId,omitempty"`
	Bank          string      `json:"bank"`
	Branch        string      `json:"branch"`
	AccountNumber string      `json:"accountNumber"`
	Amount        types.Money `json:"doAmount"`
	Date          time.Time   `json:"doDate"`
	Reference     string      `json:"reference"`
}

func (o *Order) Validate(ctx context.Context) error {
	if o.Bank == "" {
		return apperror.NewValidation("bank is required").
			WithDetail("field", "bank")
	}
	if !o.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "doAmount")
	}
	if o.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "doDate")
	}
	return nil
}

// Repository persists delivery orders per user.
type Repository interface {
	Add(ctx context.Context, userID string, order Order) (Order, error)
	// Report returns orders whose date falls inside the range.
	Report(ctx context.Context, userID string, rng daterange.Range) ([]Order, error)
	Delete(ctx context.Context, userID, orderID string) error
}

// Service manages delivery orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) userID(ctx context.Context) (string, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return "", apperror.NewUnauthorized("user context required")
	}
	return uid, nil
}

func (s *Service) Add(ctx context.Context, order Order) (Order, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Order{}, err
	}
	if err := order.Validate(ctx); err != nil {
		return Order{}, err
	}
	saved, err := s.repo.Add(ctx, uid, order)
	if err != nil {
		return Order{}, apperror.NewStoreUnavailable("add delivery order", err)
	}
	logger.Info(ctx, "delivery order added",
		"order_id", saved.ID,
		"bank", saved.Bank,
		"amount", saved.Amount)
	return saved, nil
}

// Report lists orders by date range. TotalAmount sums the listed orders.
func (s *Service) Report(ctx context.Context, rng daterange.Range) ([]Order, types.Money, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, types.Zero(), err
	}
	if err := rng.Validate(ctx); err != nil {
		return nil, types.Zero(), err
	}
	orders, err := s.repo.Report(ctx, uid, rng)
	if err != nil {
		return nil, types.Zero(), apperror.NewStoreUnavailable("delivery order report", err)
	}
	total := types.Zero()
	for _, o := range orders {
		total = total.Add(o.Amount)
	}
	return orders, total, nil
}

func (s *Service) Delete(ctx context.Context, orderID string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if orderID == "" {
		return apperror.NewValidation("order id is required").
			WithDetail("field", "docId")
	}
	if err := s.repo.Delete(ctx, uid, orderID); err != nil {
		return apperror.NewDeletionFailed("delivery order", orderID, err)
	}
	return nil
}
