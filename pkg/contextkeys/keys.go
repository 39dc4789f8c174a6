// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
//
// USAGE PATTERN:
//   import "github.com/kfone/console/pkg/contextkeys"
//   ctx = context.WithValue(ctx, contextkeys.TenantKey, tenant)
//   tenant := ctx.Value(contextkeys.TenantKey).(*tenants.Tenant)
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// SessionIDKey contains the console session ID string
	// Set by: middleware.SessionMiddleware (pkg/middleware/session.go)
	// Required by: All authenticated API endpoints
	// Type: string
	SessionIDKey Key = "session_id"

	// TenantKey contains *tenants.Tenant
	// Set by: middleware.TenantContextMiddleware (pkg/middleware/tenant.go)
	// Required by: Tenant-scoped endpoints (users, teams, products, roles)
	// Type: *tenants.Tenant
	TenantKey Key = "tenant"

	// RequestIDKey contains request ID string (UUID)
	// Set by: middleware.RequestIDMiddleware
	// Used by: Logger, audit trail
	// Type: string
	RequestIDKey Key = "request_id"

	// OperatorKey contains the signed-in operator's email
	// Set by: middleware.SessionMiddleware after session resolution
	// Used by: Logger, audit trail, role template attribution
	// Type: string
	OperatorKey Key = "operator"
)

// Helper functions for type-safe context operations

// WithSessionID adds the console session ID to the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// WithTenant adds the resolved tenant to the context
func WithTenant(ctx context.Context, tenant interface{}) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

// WithRequestID adds request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithOperator adds the operator's email to the context
func WithOperator(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, OperatorKey, email)
}

// GetSessionID retrieves the console session ID from context
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetOperator retrieves the operator's email from context
func GetOperator(ctx context.Context) string {
	if email, ok := ctx.Value(OperatorKey).(string); ok {
		return email
	}
	return ""
}
