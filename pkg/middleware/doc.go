// Package middleware provides the HTTP middleware chain for the console API.
//
// # Middleware
//
//	chain := middleware.Chain(
//		middleware.RequestIDMiddleware(),
//		middleware.LoggingMiddleware(logger),
//		middleware.RecoveryMiddleware(logger),
//		middleware.CORSMiddleware(allowedOrigins),
//	)
//
// Session-scoped routes additionally use SessionMiddleware, which resolves
// the console session from the X-Console-Session header, and tenant-scoped
// routes use TenantContextMiddleware, which resolves {client_id} through the
// tenant store and rejects unknown tenants before the handler runs.
//
// Impersonation endpoints are wrapped with a rate limiter: the in-memory
// token bucket for single instances, or the Redis-backed variant when the
// console runs with multiple replicas.
//
// # Related Packages
//
//   - pkg/session: session managers resolved by SessionMiddleware
//   - pkg/tenants: tenant store used by TenantContextMiddleware
//   - pkg/contextkeys: context keys set by these middlewares
package middleware
