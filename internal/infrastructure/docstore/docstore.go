// Package docstore defines the document-store collaborator contract.
//
// The backing store is treated as an opaque, path-addressed document database:
// collections hold schemaless documents, writes are per-document, and the only
// cross-document guarantee is the atomic numeric increment on a single field.
// Everything above this package works against Store; the postgres and memory
// subpackages provide the implementations.
package docstore

import (
	"context"
	"time"
)

// Document is one loosely-typed record fetched from a collection.
// Data carries whatever the store returned; typed repositories validate it
// at the boundary before it reaches domain code.
type Document struct {
	// ID is the document identifier within its collection.
	ID string

	// Data holds the raw document fields.
	Data map[string]any

	// UpdatedAt is the server-side modification time, when known.
	UpdatedAt time.Time
}

// Op is a comparison operator for query filters.
type Op string

const (
	OpEqual          Op = "=="
	OpGreaterOrEqual Op = ">="
	OpLessOrEqual    Op = "<="
)

// Filter constrains a collection query to documents whose field compares
// against Value under Op. Value may be a string, a number, or a time.Time.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds an equality filter.
func Where(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// WhereRange builds the pair of filters for an inclusive window on field.
func WhereRange(field string, from, to time.Time) []Filter {
	return []Filter{
		{Field: field, Op: OpGreaterOrEqual, Value: from},
		{Field: field, Op: OpLessOrEqual, Value: to},
	}
}

// Store is the document database collaborator.
//
// Paths are slash-joined segments: a collection path has an odd number of
// segments ("users/u1/products"), a document path an even number
// ("users/u1/products/p1"). Implementations must treat each call as an
// independent network operation; there is no cross-call transaction.
type Store interface {
	// GetAll returns every document in the collection.
	GetAll(ctx context.Context, collectionPath string) ([]Document, error)

	// Query returns documents matching all filters (AND semantics).
	Query(ctx context.Context, collectionPath string, filters ...Filter) ([]Document, error)

	// Get returns a single document. Missing documents yield a NOT_FOUND
	// AppError, not a nil document.
	Get(ctx context.Context, docPath string) (Document, error)

	// Set writes the document at docPath. With merge, fields in data are
	// layered over the existing document; without, the document is replaced.
	Set(ctx context.Context, docPath string, data map[string]any, merge bool) error

	// Update applies a partial update to an existing document.
	Update(ctx context.Context, docPath string, partial map[string]any) error

	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, docPath string) error

	// Add creates a document with a server-assigned ID and returns that ID.
	Add(ctx context.Context, collectionPath string, data map[string]any) (string, error)

	// Increment atomically adds delta to a numeric field of the document,
	// treating a missing field as zero. This is the one primitive safe under
	// concurrent writers and must never be emulated by read-then-write.
	Increment(ctx context.Context, docPath string, field string, delta int64) error
}
