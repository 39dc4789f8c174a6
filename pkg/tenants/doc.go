// Package tenants owns the client (tenant organization) catalog: each tenant
// carries its product subscriptions, users and teams. The package exposes the
// Store interface the rest of the console reads through, plus an in-memory
// implementation seeded with demo fixture data.
package tenants
