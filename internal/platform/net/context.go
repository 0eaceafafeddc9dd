// Package net carries request identity on the context and builds the JSON
// envelope every transport replies with
package net

import (
	"context"
	"slices"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const (
	keyUserID ctxKey = iota
	keyRole
)

// Roles: users score and rank, trainers read weights, admins change them
const (
	RoleUser    = "user"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// WithRequest sets the request id where chi's RequestID middleware keeps it
func WithRequest(ctx context.Context, reqID string) context.Context {
	return with(ctx, chimw.RequestIDKey, reqID)
}

// WithUser sets the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	return with(ctx, keyUserID, userID)
}

// WithRole sets the authenticated role
func WithRole(ctx context.Context, role string) context.Context {
	return with(ctx, keyRole, role)
}

// with skips empty values so lookups never see ""
func with(ctx context.Context, key any, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

// RequestID is the request id or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID is the authenticated user or ""
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}

// Role is the authenticated role or ""
func Role(ctx context.Context) string {
	v, _ := ctx.Value(keyRole).(string)
	return v
}

// HasRole reports whether the caller holds one of roles
func HasRole(ctx context.Context, roles ...string) bool {
	r := Role(ctx)
	return r != "" && slices.Contains(roles, r)
}
