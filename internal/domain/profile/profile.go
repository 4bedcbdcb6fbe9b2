// Package profile holds the single business profile document per user.
package profile

import (
	"context"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/types"
	"stockbook/pkg/logger"
)

// Profile is the user's business identity, stored as one well-known
// document and updated by merge.
type Profile struct {
	Email             string      `json:"email"`
	DisplayName       string      `json:"displayName"`
	PhoneNumber       string      `json:"phoneNumber"`
	BusinessName      string      `json:"businessName"`
	CompanyName       string      `json:"companyName"`
	GroupName         string      `json:"groupName"`
	ZoneName          string      `json:"zoneName"`
	Address           string      `json:"address"`
	InitialInvestment types.Money `json:"initialInvestment"`
}

// Repository persists the profile document.
type Repository interface {
	Get(ctx context.Context, userID string) (Profile, error)
	// Merge upserts the given fields into the profile document.
	Merge(ctx context.Context, userID string, p Profile) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's profile. A user without a saved profile gets the
// zero value, not an error.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return Profile{}, apperror.NewUnauthorized("user context required")
	}
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Profile{}, nil
		}
		return Profile{}, apperror.NewStoreUnavailable("get profile", err)
	}
	return p, nil
}

// Update merges the given profile fields into the stored document.
func (s *Service) Update(ctx context.Context, p Profile) error {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return apperror.NewUnauthorized("user context required")
	}
	if err := s.repo.Merge(ctx, uid, p); err != nil {
		return apperror.NewStoreUnavailable("update profile", err)
	}
	logger.Info(ctx, "profile updated", "business", p.BusinessName)
	return nil
}
