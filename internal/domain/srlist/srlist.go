// Package srlist manages the registry of sales representatives.
package srlist

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

// Representative is one registered sales representative.
type Representative struct {
	ID          string    `json:"docId,omitempty"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	DateOfJoin  time.Time `json:"dateOfJoin"`
	RouteList   []string  `json:"routeList"`
}

func (r *Representative) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if r.PhoneNumber == "" {
		return apperror.NewValidation("phone number is required").
			WithDetail("field", "phoneNumber")
	}
	return nil
}

// Repository persists representatives per user.
type Repository interface {
	Add(ctx context.Context, userID string, rep Representative) (Representative, error)
	List(ctx context.Context, userID string) ([]Representative, error)
	Delete(ctx context.Context, userID, repID string) error
}

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

// Register adds a representative. Duplicate names are rejected so sale
// attribution by name stays unambiguous.
func (s *Service) Register(ctx context.Context, rep Representative) (Representative, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Representative{}, err
	}
	if err := rep.Validate(ctx); err != nil {
		return Representative{}, err
	}

	existing, err := s.repo.List(ctx, uid)
	if err != nil {
		return Representative{}, apperror.NewStoreUnavailable("list representatives", err)
	}
	for _, r := range existing {
		if r.Name == rep.Name {
			return Representative{}, apperror.NewDuplicate("representative", "name", rep.Name)
		}
	}

	saved, err := s.repo.Add(ctx, uid, rep)
	if err != nil {
		return Representative{}, apperror.NewStoreUnavailable("register representative", err)
	}
	logger.Info(ctx, "representative registered", "sr_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// List returns all registered representatives.
func (s *Service) List(ctx context.Context) ([]Representative, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, uid)
}

// Delete removes a representative. Past sales keep their SR name; only
// future attribution is affected.
func (s *Service) Delete(ctx context.Context, repID string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if repID == "" {
		return apperror.NewValidation("representative id is required").
			WithDetail("field", "docId")
	}
	if err := s.repo.Delete(ctx, uid, repID); err != nil {
		return apperror.NewDeletionFailed("representative", repID, err)
	}
	return nil
}
