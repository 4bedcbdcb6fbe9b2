package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stockbook/internal/core/context"
)

type fakeRepo struct {
	records []Record
	err     error
}

func (f *fakeRepo) Append(_ context.Context, _ string, rec Record) (Record, error) {
	if f.err != nil {
		return Record{}, f.err
	}
	rec.ID = "a1"
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRepo) List(_ context.Context, _ string, limit int) ([]Record, error) {
	if limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func authedCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-1"})
}

func TestLogRoundTrip(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	payload := map[string]any{"id": "p1", "quantity": float64(5)}
	svc.Log(authedCtx(), ActionPost, "sale", "e1", payload)

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, ActionPost, rec.Action)
	assert.Equal(t, "sale", rec.Entity)
	assert.NotEmpty(t, rec.Payload)

	var decoded map[string]any
	require.NoError(t, svc.Decode(rec, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestLogSwallowsFailures(t *testing.T) {
	svc, err := NewService(&fakeRepo{err: errors.New("store down")})
	require.NoError(t, err)
	// Must not panic or propagate.
	svc.Log(authedCtx(), ActionDelete, "sale", "e1", nil)
}

func TestLogWithoutUserIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)
	svc.Log(context.Background(), ActionPost, "sale", "e1", nil)
	assert.Empty(t, repo.records)
}

func TestDecodeEmptyPayload(t *testing.T) {
	svc, err := NewService(&fakeRepo{})
	require.NoError(t, err)
	var out map[string]any
	require.Error(t, svc.Decode(Record{ID: "a1"}, &out))
}
