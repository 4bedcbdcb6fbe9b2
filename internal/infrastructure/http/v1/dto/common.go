// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/daterange"
)

// DateLayout is the wire format for report range boundaries.
const DateLayout = "2006-01-02"

// IDResponse returns a created entity ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// DateRangeRequest carries a report range as from/to query parameters.
type DateRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Range parses the request into a normalized date range.
func (r *DateRangeRequest) Range() (daterange.Range, error) {
	from, err := time.Parse(DateLayout, r.From)
	if err != nil {
		return daterange.Range{}, apperror.NewValidation("invalid from date").
			WithDetail("field", "from").
			WithDetail("value", r.From)
	}
	to, err := time.Parse(DateLayout, r.To)
	if err != nil {
		return daterange.Range{}, apperror.NewValidation("invalid to date").
			WithDetail("field", "to").
			WithDetail("value", r.To)
	}
	return daterange.New(from, to), nil
}
