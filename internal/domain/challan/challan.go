// Package challan records incoming delivery challans and applies their
// product lifts to stock.
package challan

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/daterange"
)

// Item is one product line of a challan.
type Item struct {
	ProductID       string `json:"id"`
	Title           string `json:"title"`
	SKU             string `json:"sku"`
	LiftingQuantity int64  `json:"liftingQuantity"`
}

// Challan is a receipt document for goods lifted from the dealer. Items are
// embedded in the header: a challan is read and deleted as one unit.
type Challan struct {
	ID        string    `json:"docId,omitempty"`
	Number    string    `json:"challanNo"`
	Timestamp time.Time `json:"timestamp"`
	Items     []Item    `json:"items"`
}

// TotalLifted sums the lifted quantities across all items.
func (c *Challan) TotalLifted() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LiftingQuantity
	}
	return total
}

// Validate checks challan invariants before posting.
func (c *Challan) Validate(ctx context.Context) error {
	if c.Number == "" {
		return apperror.NewValidation("challan number is required").
			WithDetail("field", "challanNo")
	}
	if len(c.Items) == 0 {
		return apperror.NewEmptyBatch()
	}
	for _, item := range c.Items {
		if item.ProductID == "" {
			return apperror.NewValidation("item productId is required").
				WithDetail("field", "items.id")
		}
		if item.LiftingQuantity <= 0 {
			return apperror.NewInvalidQuantity(item.ProductID, item.LiftingQuantity)
		}
	}
	return nil
}

// Repository persists challans per user.
type Repository interface {
	Save(ctx context.Context, userID string, challan Challan) (Challan, error)
	Get(ctx context.Context, userID, challanID string) (Challan, error)
	Search(ctx context.Context, userID string, rng daterange.Range) ([]Challan, error)
	Delete(ctx context.Context, userID, challanID string) error
}
