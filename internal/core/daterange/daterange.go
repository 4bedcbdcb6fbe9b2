// Package daterange provides inclusive calendar-day ranges for report queries.
package daterange

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
)

// Range is a normalized, inclusive date window. Start is 00:00:00.000 of the
// first calendar day and End is 23:59:59.999 of the last, so a query
// `timestamp >= Start AND timestamp <= End` covers both boundary days in full.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New normalizes two dates into an inclusive Range, regardless of the
// time-of-day either input carries. Each boundary keeps its own location.
func New(from, to time.Time) Range {
	return Range{
		Start: StartOfDay(from),
		End:   EndOfDay(to),
	}
}

// StartOfDay truncates t to 00:00:00.000 of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay advances t to 23:59:59.999 of its calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// Contains reports whether ts falls inside the range, boundaries included.
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// Validate implements basic invariant checks on the normalized range.
func (r Range) Validate(ctx context.Context) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return apperror.NewValidation("start and end dates are required")
	}
	if r.End.Before(r.Start) {
		return apperror.NewValidation("end date must not be before start date").
			WithDetail("start", r.Start).
			WithDetail("end", r.End)
	}
	return nil
}
