// Package postgres implements docstore.Store on PostgreSQL.
//
// Documents live in a single JSONB-backed table keyed by (collection_path,
// doc_id). The atomic increment primitive maps to a single UPDATE with
// jsonb_set, so concurrent stock adjustments never lose updates.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/infrastructure/docstore"
)

var tracer = otel.Tracer("stockbook/docstore")

const documentsTable = "documents"

// Schema is the DDL for the documents table.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection_path TEXT        NOT NULL,
    doc_id          TEXT        NOT NULL,
    data            JSONB       NOT NULL DEFAULT '{}'::jsonb,
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection_path, doc_id)
);
CREATE INDEX IF NOT EXISTS idx_documents_timestamp
    ON documents (collection_path, ((data->>'timestamp')));
`

// Store implements docstore.Store on a pgx connection pool.
type Store struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// New creates a postgres-backed document store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ docstore.Store = (*Store)(nil)

// EnsureSchema creates the documents table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

type documentRow struct {
	DocID     string    `db:"doc_id"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GetAll returns every document in the collection.
func (s *Store) GetAll(ctx context.Context, collectionPath string) ([]docstore.Document, error) {
	return s.Query(ctx, collectionPath)
}

// Query returns documents matching all filters.
func (s *Store) Query(ctx context.Context, collectionPath string, filters ...docstore.Filter) ([]docstore.Document, error) {
	ctx, span := s.startSpan(ctx, "query", collectionPath)
	defer span.End()

	sql, args, err := s.buildQuery(collectionPath, filters)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []documentRow
	if err := pgxscan.Select(ctx, s.pool, &rows, sql, args...); err != nil {
		return nil, apperror.NewStoreUnavailable("query", err).WithDetail("collection", collectionPath)
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.DocID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// buildQuery translates filters into a squirrel SELECT over the JSONB column.
// Filter fields are code-level constants, never user input.
func (s *Store) buildQuery(collectionPath string, filters []docstore.Filter) (string, []any, error) {
	q := s.builder.
		Select("doc_id", "data", "updated_at").
		From(documentsTable).
		Where(squirrel.Eq{"collection_path": collectionPath})

	for _, f := range filters {
		expr, value := filterExpr(f)
		q = q.Where(expr, value)
	}

	q = q.OrderBy("doc_id")
	return q.ToSql()
}

// filterExpr renders one filter as a SQL expression with a cast matched to
// the Go type of the filter value.
func filterExpr(f docstore.Filter) (string, any) {
	op := sqlOp(f.Op)
	switch v := f.Value.(type) {
	case time.Time:
		return fmt.Sprintf("(data->>'%s')::timestamptz %s ?", f.Field, op), v.UTC()
	case int, int64, float64:
		return fmt.Sprintf("(data->>'%s')::numeric %s ?", f.Field, op), v
	default:
		return fmt.Sprintf("data->>'%s' %s ?", f.Field, op), v
	}
}

func sqlOp(op docstore.Op) string {
	if op == docstore.OpEqual {
		return "="
	}
	return string(op)
}

// Get returns a single document.
func (s *Store) Get(ctx context.Context, docPath string) (docstore.Document, error) {
	ctx, span := s.startSpan(ctx, "get", docPath)
	defer span.End()

	colPath, docID := docstore.SplitDocPath(docPath)

	q := s.builder.
		Select("doc_id", "data", "updated_at").
		From(documentsTable).
		Where(squirrel.Eq{"collection_path": colPath, "doc_id": docID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return docstore.Document{}, fmt.Errorf("build get: %w", err)
	}

	var row documentRow
	if err := pgxscan.Get(ctx, s.pool, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return docstore.Document{}, apperror.NewNotFound("document", docPath)
		}
		return docstore.Document{}, apperror.NewStoreUnavailable("get", err).WithDetail("path", docPath)
	}

	return decodeRow(row)
}

// Set writes the document, replacing or merging the JSONB payload.
func (s *Store) Set(ctx context.Context, docPath string, data map[string]any, merge bool) error {
	ctx, span := s.startSpan(ctx, "set", docPath)
	defer span.End()

	colPath, docID := docstore.SplitDocPath(docPath)

	payload, err := encodeData(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	conflict := "DO UPDATE SET data = EXCLUDED.data, updated_at = now()"
	if merge {
		conflict = "DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = now()"
	}

	sql := fmt.Sprintf(`INSERT INTO %s (collection_path, doc_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection_path, doc_id) %s`, documentsTable, conflict)

	if _, err := s.pool.Exec(ctx, sql, colPath, docID, payload); err != nil {
		return apperror.NewStoreUnavailable("set", err).WithDetail("path", docPath)
	}
	return nil
}

// Update applies a partial update to an existing document.
func (s *Store) Update(ctx context.Context, docPath string, partial map[string]any) error {
	ctx, span := s.startSpan(ctx, "update", docPath)
	defer span.End()

	colPath, docID := docstore.SplitDocPath(docPath)

	payload, err := encodeData(partial)
	if err != nil {
		return fmt.Errorf("encode partial: %w", err)
	}

	sql := fmt.Sprintf(`UPDATE %s SET data = data || $3, updated_at = now()
		WHERE collection_path = $1 AND doc_id = $2`, documentsTable)

	tag, err := s.pool.Exec(ctx, sql, colPath, docID, payload)
	if err != nil {
		return apperror.NewStoreUnavailable("update", err).WithDetail("path", docPath)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("document", docPath)
	}
	return nil
}

// Delete removes the document. Absent documents are ignored.
func (s *Store) Delete(ctx context.Context, docPath string) error {
	ctx, span := s.startSpan(ctx, "delete", docPath)
	defer span.End()

	colPath, docID := docstore.SplitDocPath(docPath)

	q := s.builder.
		Delete(documentsTable).
		Where(squirrel.Eq{"collection_path": colPath, "doc_id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return apperror.NewStoreUnavailable("delete", err).WithDetail("path", docPath)
	}
	return nil
}

// Add creates a document with a generated time-ordered ID.
func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]any) (string, error) {
	ctx, span := s.startSpan(ctx, "add", collectionPath)
	defer span.End()

	docID := id.NewString()

	payload, err := encodeData(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	q := s.builder.
		Insert(documentsTable).
		Columns("collection_path", "doc_id", "data").
		Values(collectionPath, docID, payload)

	sql, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return "", apperror.NewStoreUnavailable("add", err).WithDetail("collection", collectionPath)
	}
	return docID, nil
}

// Increment atomically adds delta to a numeric field in a single UPDATE.
// A missing field counts as zero; no floor is applied.
func (s *Store) Increment(ctx context.Context, docPath string, field string, delta int64) error {
	ctx, span := s.startSpan(ctx, "increment", docPath)
	defer span.End()

	colPath, docID := docstore.SplitDocPath(docPath)

	sql := fmt.Sprintf(`UPDATE %s
		SET data = jsonb_set(data, ARRAY[$3], to_jsonb(COALESCE((data->>$3)::numeric, 0) + $4), true),
		    updated_at = now()
		WHERE collection_path = $1 AND doc_id = $2`, documentsTable)

	tag, err := s.pool.Exec(ctx, sql, colPath, docID, field, delta)
	if err != nil {
		return apperror.NewStoreUnavailable("increment", err).WithDetail("path", docPath)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("document", docPath)
	}
	return nil
}

func (s *Store) startSpan(ctx context.Context, op, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "docstore."+op,
		trace.WithAttributes(
			attribute.String("docstore.op", op),
			attribute.String("docstore.path", path),
		))
}

// encodeData marshals a document payload, rendering time.Time fields as
// RFC 3339 UTC strings so timestamptz casts in filters stay valid.
func encodeData(data map[string]any) ([]byte, error) {
	normalized := make(map[string]any, len(data))
	for k, v := range data {
		if ts, ok := v.(time.Time); ok {
			normalized[k] = ts.UTC().Format(time.RFC3339Nano)
			continue
		}
		normalized[k] = v
	}
	return json.Marshal(normalized)
}

func decodeRow(row documentRow) (docstore.Document, error) {
	var data map[string]any
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return docstore.Document{}, err
	}
	return docstore.Document{ID: row.DocID, Data: data, UpdatedAt: row.UpdatedAt}, nil
}
