// Package memory provides an in-memory docstore.Store used by tests and the
// local development mode. It mirrors the store contract including the atomic
// increment and missing-field-as-zero semantics.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/infrastructure/docstore"
)

// Store is a thread-safe in-memory document store.
type Store struct {
	mu sync.RWMutex

	// collections maps collection path -> doc ID -> fields.
	collections map[string]map[string]map[string]any
	updatedAt   map[string]time.Time // doc path -> last write

	// ErrHook, when set, is consulted before every operation and lets tests
	// inject per-call failures (op is the Store method name).
	ErrHook func(op, path string) error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		updatedAt:   make(map[string]time.Time),
	}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) hook(op, path string) error {
	if s.ErrHook != nil {
		return s.ErrHook(op, path)
	}
	return nil
}

// GetAll returns every document in the collection, ordered by doc ID.
func (s *Store) GetAll(ctx context.Context, collectionPath string) ([]docstore.Document, error) {
	return s.Query(ctx, collectionPath)
}

// Query returns documents matching all filters, ordered by doc ID.
func (s *Store) Query(ctx context.Context, collectionPath string, filters ...docstore.Filter) ([]docstore.Document, error) {
	if err := s.hook("Query", collectionPath); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.collections[collectionPath]
	docs := make([]docstore.Document, 0, len(col))
	for docID, data := range col {
		if !matchAll(data, filters) {
			continue
		}
		docs = append(docs, docstore.Document{
			ID:        docID,
			Data:      cloneData(data),
			UpdatedAt: s.updatedAt[collectionPath+"/"+docID],
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Get returns a single document.
func (s *Store) Get(ctx context.Context, docPath string) (docstore.Document, error) {
	if err := s.hook("Get", docPath); err != nil {
		return docstore.Document{}, err
	}

	colPath, docID := docstore.SplitDocPath(docPath)

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[colPath][docID]
	if !ok {
		return docstore.Document{}, apperror.NewNotFound("document", docPath)
	}
	return docstore.Document{ID: docID, Data: cloneData(data), UpdatedAt: s.updatedAt[docPath]}, nil
}

// Set writes the document, replacing or merging fields.
func (s *Store) Set(ctx context.Context, docPath string, data map[string]any, merge bool) error {
	if err := s.hook("Set", docPath); err != nil {
		return err
	}

	colPath, docID := docstore.SplitDocPath(docPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.ensureCollection(colPath)
	if merge {
		existing, ok := col[docID]
		if !ok {
			existing = make(map[string]any)
			col[docID] = existing
		}
		for k, v := range data {
			existing[k] = v
		}
	} else {
		col[docID] = cloneData(data)
	}
	s.updatedAt[docPath] = time.Now().UTC()
	return nil
}

// Update applies a partial update to an existing document.
func (s *Store) Update(ctx context.Context, docPath string, partial map[string]any) error {
	if err := s.hook("Update", docPath); err != nil {
		return err
	}

	colPath, docID := docstore.SplitDocPath(docPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[colPath][docID]
	if !ok {
		return apperror.NewNotFound("document", docPath)
	}
	for k, v := range partial {
		existing[k] = v
	}
	s.updatedAt[docPath] = time.Now().UTC()
	return nil
}

// Delete removes the document. Absent documents are ignored.
func (s *Store) Delete(ctx context.Context, docPath string) error {
	if err := s.hook("Delete", docPath); err != nil {
		return err
	}

	colPath, docID := docstore.SplitDocPath(docPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[colPath], docID)
	delete(s.updatedAt, docPath)
	return nil
}

// Add creates a document with a generated ID.
func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	if err := s.hook("Add", collectionPath); err != nil {
		return "", err
	}

	docID := id.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureCollection(collectionPath)[docID] = cloneData(data)
	s.updatedAt[collectionPath+"/"+docID] = time.Now().UTC()
	return docID, nil
}

// Increment atomically adds delta to a numeric field, missing field is zero.
func (s *Store) Increment(ctx context.Context, docPath string, field string, delta int64) error {
	if err := s.hook("Increment", docPath); err != nil {
		return err
	}

	colPath, docID := docstore.SplitDocPath(docPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[colPath][docID]
	if !ok {
		return apperror.NewNotFound("document", docPath)
	}
	existing[field] = asInt64(existing[field]) + delta
	s.updatedAt[docPath] = time.Now().UTC()
	return nil
}

func (s *Store) ensureCollection(colPath string) map[string]map[string]any {
	col, ok := s.collections[colPath]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[colPath] = col
	}
	return col
}

// --- filter evaluation ---

func matchAll(data map[string]any, filters []docstore.Filter) bool {
	for _, f := range filters {
		if !match(data[f.Field], f) {
			return false
		}
	}
	return true
}

func match(fieldVal any, f docstore.Filter) bool {
	if want, ok := f.Value.(time.Time); ok {
		got, ok := fieldVal.(time.Time)
		if !ok {
			return false
		}
		switch f.Op {
		case docstore.OpEqual:
			return got.Equal(want)
		case docstore.OpGreaterOrEqual:
			return !got.Before(want)
		case docstore.OpLessOrEqual:
			return !got.After(want)
		}
		return false
	}

	if wantNum, ok := asFloat(f.Value); ok {
		gotNum, ok := asFloat(fieldVal)
		if !ok {
			return false
		}
		switch f.Op {
		case docstore.OpEqual:
			return gotNum == wantNum
		case docstore.OpGreaterOrEqual:
			return gotNum >= wantNum
		case docstore.OpLessOrEqual:
			return gotNum <= wantNum
		}
		return false
	}

	gotStr, ok := fieldVal.(string)
	if !ok {
		return false
	}
	wantStr, ok := f.Value.(string)
	if !ok {
		return false
	}
	switch f.Op {
	case docstore.OpEqual:
		return gotStr == wantStr
	case docstore.OpGreaterOrEqual:
		return gotStr >= wantStr
	case docstore.OpLessOrEqual:
		return gotStr <= wantStr
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	}
	return 0
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
