// Package roles stores finished role templates emitted by the authoring
// wizard. Two Store implementations are provided: an in-memory store for
// demo/fixture mode and a Postgres store for real deployments.
package roles
