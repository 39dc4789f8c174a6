// Package session holds an operator's authentication state: the verified
// operator identity, the active token pair, and the impersonation mode
// switch. Only the impersonation fields survive a restart; they are persisted
// through a small whitelist store (Redis-backed in production).
package session
