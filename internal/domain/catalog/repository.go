package catalog

import (
	"context"
)

// Repository defines product data access. All operations are scoped to the
// tenant's users/{userID}/products collection.
type Repository interface {
	// Add persists a new product and returns its store-assigned ID.
	Add(ctx context.Context, userID string, p *Product) (string, error)

	// List returns every product of the tenant.
	List(ctx context.Context, userID string) ([]Product, error)

	// GetByID returns one product or a NOT_FOUND AppError.
	GetByID(ctx context.Context, userID, productID string) (Product, error)

	// Update replaces all editable fields of an existing product.
	Update(ctx context.Context, userID string, p *Product) error

	// Delete removes the product. Historical ledger entries keep their
	// dangling productId reference; snapshots keep them reportable.
	Delete(ctx context.Context, userID, productID string) error

	// IncrementStock atomically adjusts the stock field by delta. This is
	// the only stock mutation path used by posting flows.
	IncrementStock(ctx context.Context, userID, productID string, delta int64) error
}
