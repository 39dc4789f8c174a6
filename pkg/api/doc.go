// Package api is the console's HTTP surface: the paginated client, user,
// team, product and role-template queries, the role authoring wizard, the
// per-country attribute overlay, and the Keycloak sign-in and impersonation
// endpoints.
//
// All routes live under /api/v1. List endpoints return the shared page
// envelope {data, total, page, limit, totalPages}; entity-specific filters
// (search, identity_type, unassigned, role_type, ...) are query parameters.
//
// Handlers read the per-session auth state through pkg/session and never
// talk to Keycloak directly; the provider and impersonator collaborators are
// injected so the server also runs with authentication disabled for local
// development.
package api
