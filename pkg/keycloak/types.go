package keycloak

import (
	"errors"
	"fmt"
)

// Config carries the realm and client settings for the console's Keycloak
// integration.
type Config struct {
	// BaseURL is the Keycloak server root, e.g. http://localhost:8080.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Realm is the realm the console's users live in.
	Realm string `json:"realm" yaml:"realm"`
	// ClientID and ClientSecret identify the console's OIDC client.
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"-" yaml:"client_secret"`
	// RedirectURL is the console's OIDC callback endpoint.
	RedirectURL string `json:"redirect_url" yaml:"redirect_url"`
	// ImpersonationClientID and its secret identify the confidential client
	// allowed to perform token exchanges.
	ImpersonationClientID     string `json:"impersonation_client_id" yaml:"impersonation_client_id"`
	ImpersonationClientSecret string `json:"-" yaml:"impersonation_client_secret"`
}

// IssuerURL returns the realm's OIDC issuer.
func (c Config) IssuerURL() string {
	return fmt.Sprintf("%s/realms/%s", c.BaseURL, c.Realm)
}

// TokenURL returns the realm's token endpoint.
func (c Config) TokenURL() string {
	return c.IssuerURL() + "/protocol/openid-connect/token"
}

// AdminUsersURL returns the admin users query endpoint.
func (c Config) AdminUsersURL() string {
	return fmt.Sprintf("%s/admin/realms/%s/users", c.BaseURL, c.Realm)
}

// Validate checks the settings needed for login to work.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("keycloak base URL is required")
	}
	if c.Realm == "" {
		return errors.New("keycloak realm is required")
	}
	if c.ClientID == "" {
		return errors.New("keycloak client id is required")
	}
	return nil
}

// ErrUserNotFound is returned when the admin lookup finds no user for the
// given email.
var ErrUserNotFound = errors.New("no user found with the provided email")

// AuthError wraps identity-provider failures so handlers can map them to 401
// responses without losing the cause.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is an identity-provider failure.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
