package keycloak

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/kfone/console/pkg/session"
)

// Provider handles the OIDC login flow against the realm.
type Provider struct {
	config   Config
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
}

// NewProvider runs OIDC discovery against the realm issuer and prepares the
// authorization-code flow.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	return &Provider{
		config:   cfg,
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// AuthURL returns the authorization URL for a login attempt. loginHint
// pre-fills the username field when non-empty.
func (p *Provider) AuthURL(state, nonce, loginHint string) string {
	opts := []oauth2.AuthCodeOption{oidc.Nonce(nonce)}
	if loginHint != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", loginHint))
	}
	return p.oauth.AuthCodeURL(state, opts...)
}

// claims is the subset of ID-token claims the console displays.
type claims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// HandleCallback exchanges the authorization code, verifies the ID token and
// returns the operator identity plus token pair.
func (p *Provider) HandleCallback(ctx context.Context, code, nonce string) (session.Identity, session.TokenPair, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return session.Identity{}, session.TokenPair{}, &AuthError{Op: "code exchange", Err: err}
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return session.Identity{}, session.TokenPair{}, &AuthError{Op: "callback", Err: fmt.Errorf("no id_token in token response")}
	}
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return session.Identity{}, session.TokenPair{}, &AuthError{Op: "id token verification", Err: err}
	}
	if nonce != "" && idToken.Nonce != nonce {
		return session.Identity{}, session.TokenPair{}, &AuthError{Op: "id token verification", Err: fmt.Errorf("nonce mismatch")}
	}

	var c claims
	if err := idToken.Claims(&c); err != nil {
		return session.Identity{}, session.TokenPair{}, &AuthError{Op: "claims mapping", Err: err}
	}

	identity := session.Identity{
		Email:     c.Email,
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
	}
	pair := session.TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	return identity, pair, nil
}

// Refresh renews a token pair through the standard refresh grant. Implements
// session.Refresher.
func (p *Provider) Refresh(ctx context.Context, current session.TokenPair, minValidity time.Duration) (session.TokenPair, error) {
	if current.RefreshToken == "" {
		return session.TokenPair{}, &AuthError{Op: "refresh", Err: fmt.Errorf("no refresh token")}
	}

	src := p.oauth.TokenSource(ctx, &oauth2.Token{
		RefreshToken: current.RefreshToken,
		// Force a refresh regardless of what the source thinks it has.
		Expiry: time.Now().Add(-minValidity),
	})
	token, err := src.Token()
	if err != nil {
		return session.TokenPair{}, &AuthError{Op: "refresh", Err: err}
	}

	pair := session.TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = current.RefreshToken
	}
	return pair, nil
}
