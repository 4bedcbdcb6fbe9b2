package context

import (
	"context"

	"stockbook/internal/core/id"
)

// TraceContext carries the correlation IDs attached to every log line and
// error response for a request.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// NewTrace builds a TraceContext from inbound header values, minting a
// UUIDv7 for any blank field.
func NewTrace(traceID, requestID string) *TraceContext {
	if traceID == "" {
		traceID = id.NewString()
	}
	if requestID == "" {
		requestID = id.NewString()
	}
	return &TraceContext{TraceID: traceID, RequestID: requestID}
}
