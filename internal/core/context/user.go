// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
// The user ID doubles as the tenant namespace: every document the user owns
// lives under users/{userID}/ in the backing store.
type UserContext struct {
	UserID      string
	Email       string
	DisplayName string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetTenantID returns the tenant namespace from context or empty string.
// Tenant and user are the same identity in this system.
func GetTenantID(ctx context.Context) string {
	return GetUserID(ctx)
}
