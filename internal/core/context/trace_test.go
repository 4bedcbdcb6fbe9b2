package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
)

func TestTraceRoundTrip(t *testing.T) {
	trace := &TraceContext{TraceID: "t-1", RequestID: "r-1"}
	ctx := WithTrace(context.Background(), trace)
	assert.Equal(t, trace, GetTrace(ctx))
	assert.Nil(t, GetTrace(context.Background()))
}

func TestNewTracePropagatesInboundIDs(t *testing.T) {
	trace := NewTrace("t-1", "r-1")
	assert.Equal(t, "t-1", trace.TraceID)
	assert.Equal(t, "r-1", trace.RequestID)
}

func TestNewTraceMintsMissingIDs(t *testing.T) {
	trace := NewTrace("", "")
	_, err := id.Parse(trace.TraceID)
	require.NoError(t, err)
	_, err = id.Parse(trace.RequestID)
	require.NoError(t, err)
	assert.NotEqual(t, trace.TraceID, trace.RequestID)
}
