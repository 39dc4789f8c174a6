package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kfone/console/pkg/session"
)

const (
	grantTokenExchange = "urn:ietf:params:oauth:grant-type:token-exchange"
	tokenTypeAccess    = "urn:ietf:params:oauth:token-type:access_token"
)

// userLookupCacheSize bounds the email -> subject id cache.
const userLookupCacheSize = 512

// adminUser is the slice of Keycloak's admin user representation the console
// needs.
type adminUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Impersonator performs the two-step impersonation flow: resolve the target
// user's subject id through the admin API, then exchange the operator's
// token for a pair scoped to that subject.
type Impersonator struct {
	config Config
	client *http.Client
	cache  *lru.Cache[string, adminUser]
}

// NewImpersonator creates an impersonator. A nil httpClient uses a default
// with a 15s timeout.
func NewImpersonator(cfg Config, httpClient *http.Client) (*Impersonator, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	cache, err := lru.New[string, adminUser](userLookupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create user lookup cache: %w", err)
	}
	return &Impersonator{config: cfg, client: httpClient, cache: cache}, nil
}

// LookupUser resolves a user by email through the admin users endpoint,
// authorized with the operator's bearer token. Results are cached per email.
func (i *Impersonator) LookupUser(ctx context.Context, bearerToken, email string) (*adminUser, error) {
	if cached, ok := i.cache.Get(email); ok {
		return &cached, nil
	}

	u := i.config.AdminUsersURL() + "?username=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &AuthError{Op: "user lookup", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, &AuthError{Op: "user lookup", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Op: "user lookup", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var users []adminUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, &AuthError{Op: "user lookup", Err: err}
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	user := users[0]
	i.cache.Add(email, user)
	return &user, nil
}

// tokenResponse is the token endpoint's reply.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Exchange swaps the operator's access token for one scoped to the subject.
func (i *Impersonator) Exchange(ctx context.Context, subjectToken, subjectID string) (session.TokenPair, error) {
	form := url.Values{
		"client_id":            {i.config.ImpersonationClientID},
		"client_secret":        {i.config.ImpersonationClientSecret},
		"requested_subject":    {subjectID},
		"grant_type":           {grantTokenExchange},
		"subject_token":        {subjectToken},
		"subject_token_type":   {tokenTypeAccess},
		"requested_token_type": {tokenTypeAccess},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.config.TokenURL(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return session.TokenPair{}, &AuthError{Op: "token exchange", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := i.client.Do(req)
	if err != nil {
		return session.TokenPair{}, &AuthError{Op: "token exchange", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.TokenPair{}, &AuthError{Op: "token exchange", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return session.TokenPair{}, &AuthError{Op: "token exchange", Err: err}
	}
	if tr.AccessToken == "" {
		return session.TokenPair{}, &AuthError{Op: "token exchange", Err: fmt.Errorf("no access token in response")}
	}

	return session.TokenPair{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}, nil
}

// Impersonate runs both steps. Failure at either step returns an error and
// produces no partial result, so callers can leave session state untouched.
func (i *Impersonator) Impersonate(ctx context.Context, operatorToken, email string) (session.Identity, session.TokenPair, error) {
	user, err := i.LookupUser(ctx, operatorToken, email)
	if err != nil {
		return session.Identity{}, session.TokenPair{}, err
	}

	pair, err := i.Exchange(ctx, operatorToken, user.ID)
	if err != nil {
		return session.Identity{}, session.TokenPair{}, err
	}

	identity := session.Identity{
		Email:     email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	return identity, pair, nil
}
