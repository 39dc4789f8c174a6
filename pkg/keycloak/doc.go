// Package keycloak integrates the console with its Keycloak identity
// provider: OIDC login/callback, silent token refresh, and the operator
// impersonation flow (admin user lookup followed by an RFC 8693 token
// exchange).
package keycloak
