// Package dues tracks outstanding outlet payments.
package dues

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/daterange"
	"stockbook/internal/core/types"
	"stockbook/pkg/logger"
)

// Status of a due.
const (
	StatusPending   = "pending"
	StatusCollected = "collected"
)

// Due is one outstanding payment owed by an outlet.
type Due struct {
	ID             string      `json:"docId,omitempty"`
	OutletName     string      `json:"outletName"`
	RouteName      string      `json:"routeName"`
	Owner          string      `json:"owner"`
	Amount         types.Money `json:"amount"`
	Reference      string      `json:"reference"`
	Status         string      `json:"status"`
	DueDate        time.Time   `json:"dueDate"`
	CollectionDate time.Time   `json:"collectionDate"`
}

func (d *Due) Validate(ctx context.Context) error {
	if d.OutletName == "" {
		return apperror.NewValidation("outlet name is required").
			WithDetail("field", "outletName")
	}
	if d.Amount.IsNegative() {
		return apperror.NewValidation("amount must not be negative").
			WithDetail("field", "amount")
	}
	if d.DueDate.IsZero() {
		return apperror.NewValidation("due date is required").
			WithDetail("field", "dueDate")
	}
	return nil
}

// Repository persists dues per user.
type Repository interface {
	Add(ctx context.Context, userID string, due Due) (Due, error)
	// Report returns dues whose due date falls inside the range.
	Report(ctx context.Context, userID string, rng daterange.Range) ([]Due, error)
	Update(ctx context.Context, userID string, due Due) error
	Delete(ctx context.Context, userID, dueID string) error
}

// Service manages dues.
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

// Add records a new due. Missing status defaults to pending.
func (s *Service) Add(ctx context.Context, due Due) (Due, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Due{}, err
	}
	if due.Status == "" {
		due.Status = StatusPending
	}
	if err := due.Validate(ctx); err != nil {
		return Due{}, err
	}
	saved, err := s.repo.Add(ctx, uid, due)
	if err != nil {
		return Due{}, apperror.NewStoreUnavailable("add due", err)
	}
	logger.Info(ctx, "due added",
		"due_id", saved.ID,
		"outlet", saved.OutletName,
		"amount", saved.Amount)
	return saved, nil
}

// Report lists dues by due date range with totals per status.
func (s *Service) Report(ctx context.Context, rng daterange.Range) ([]Due, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if err := rng.Validate(ctx); err != nil {
		return nil, err
	}
	return s.repo.Report(ctx, uid, rng)
}

// MarkCollected sets the due's status and collection date.
func (s *Service) MarkCollected(ctx context.Context, due Due, collectedAt time.Time) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if due.ID == "" {
		return apperror.NewValidation("due id is required").
			WithDetail("field", "docId")
	}
	due.Status = StatusCollected
	due.CollectionDate = collectedAt
	if err := s.repo.Update(ctx, uid, due); err != nil {
		return apperror.NewStoreUnavailable("update due", err)
	}
	logger.Info(ctx, "due collected", "due_id", due.ID, "outlet", due.OutletName)
	return nil
}

// Delete removes a due.
func (s *Service) Delete(ctx context.Context, dueID string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if dueID == "" {
		return apperror.NewValidation("due id is required").
			WithDetail("field", "docId")
	}
	if err := s.repo.Delete(ctx, uid, dueID); err != nil {
		return apperror.NewDeletionFailed("due", dueID, err)
	}
	return nil
}
