package docrepo

import (
	"context"

	"stockbook/internal/domain/profile"
	"stockbook/internal/infrastructure/docstore"
)

// ProfileRepo stores the single business profile document at
// users/{uid}/businessProfile/profile.
type ProfileRepo struct {
	store docstore.Store
}

func NewProfileRepo(store docstore.Store) *ProfileRepo {
	return &ProfileRepo{store: store}
}

var _ profile.Repository = (*ProfileRepo)(nil)

func (r *ProfileRepo) Get(ctx context.Context, userID string) (profile.Profile, error) {
	doc, err := r.store.Get(ctx, docstore.Doc(userID, docstore.ColBusinessProfile, docstore.ProfileDocID))
	if err != nil {
		return profile.Profile{}, err
	}
	d := doc.Data
	return profile.Profile{
		Email:             asString(d["email"]),
		DisplayName:       asString(d["displayName"]),
		PhoneNumber:       asString(d["phoneNumber"]),
		BusinessName:      asString(d["businessName"]),
		CompanyName:       asString(d["companyName"]),
		GroupName:         asString(d["groupName"]),
		ZoneName:          asString(d["zoneName"]),
		Address:           asString(d["address"]),
		InitialInvestment: asMoney(d["initialInvestment"]),
	}, nil
}

func (r *ProfileRepo) Merge(ctx context.Context, userID string, p profile.Profile) error {
	return r.store.Set(ctx, docstore.Doc(userID, docstore.ColBusinessProfile, docstore.ProfileDocID), map[string]any{
		"email":             p.Email,
		"displayName":       p.DisplayName,
		"phoneNumber":       p.PhoneNumber,
		"businessName":      p.BusinessName,
		"companyName":       p.CompanyName,
		"groupName":         p.GroupName,
		"zoneName":          p.ZoneName,
		"address":           p.Address,
		"initialInvestment": moneyValue(p.InitialInvestment),
	}, true)
}
