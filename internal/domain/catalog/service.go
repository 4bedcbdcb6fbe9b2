package catalog

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

// Cache is the product-list cache owned by this service. Every write path
// invalidates the tenant's entry so callers always refetch fresh stock after
// a posting or edit.
type Cache interface {
	Get(userID string) ([]Product, bool)
	Put(userID string, products []Product)
	Invalidate(userID string)
}

// Service provides business operations for the product catalog.
type Service struct {
	repo  Repository
	cache Cache
}

// NewService creates a new catalog service.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) userID(ctx context.Context) (string, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return "", apperror.NewUnauthorized("user context required")
	}
	return uid, nil
}

// Create adds a new product to the catalog.
func (s *Service) Create(ctx context.Context, p *Product) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}

	if err := p.Validate(ctx); err != nil {
		return err
	}

	productID, err := s.repo.Add(ctx, uid, p)
	if err != nil {
		return fmt.Errorf("add product: %w", err)
	}
	p.ID = productID

	s.cache.Invalidate(uid)

	logger.Info(ctx, "product created",
		"product_id", p.ID,
		"sku", p.SKU)

	return nil
}

// List returns all products, read-through the cache.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if products, ok := s.cache.Get(uid); ok {
		return products, nil
	}

	products, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.cache.Put(uid, products)
	return products, nil
}

// ListActive returns products currently available for sale entry.
func (s *Service) ListActive(ctx context.Context) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetByID returns one product.
func (s *Service) GetByID(ctx context.Context, productID string) (Product, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return Product{}, err
	}
	return s.repo.GetByID(ctx, uid, productID)
}

// Update replaces the editable fields of a product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}

	if p.ID == "" {
		return apperror.NewValidation("product id is required")
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, uid, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	s.cache.Invalidate(uid)

	logger.Info(ctx, "product updated", "product_id", p.ID)
	return nil
}

// Delete removes a product. Historical ledger entries are not cascaded:
// reports read snapshots, not live joins.
func (s *Service) Delete(ctx context.Context, productID string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}

	if productID == "" {
		return apperror.NewValidation("product id is required")
	}

	if err := s.repo.Delete(ctx, uid, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.Invalidate(uid)

	logger.Info(ctx, "product deleted", "product_id", productID)
	return nil
}
