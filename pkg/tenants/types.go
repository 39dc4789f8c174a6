package tenants

import (
	"errors"
	"fmt"
	"strings"
)

// IdentityType says which identity platform a client's users live on.
type IdentityType string

const (
	IdentityKF1           IdentityType = "KF1"
	IdentityHub           IdentityType = "Hub"
	IdentityMultiRater    IdentityType = "Multi Rater"
	IdentityHubMultiRater IdentityType = "Hub & Multi Rater"
)

// Tenant is a client organization, the top-level scoping unit for users,
// teams and role templates.
type Tenant struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	SubscribedProducts []string     `json:"subscribedProducts"`
	IdentityType       IdentityType `json:"identityType"`
	SSO                bool         `json:"sso"`
	ExistingClient     bool         `json:"isExistingClient"`
	Users              []User       `json:"users"`
	Teams              []Team       `json:"teams"`
}

// User belongs to exactly one tenant. TeamID is nil when the user is not
// assigned to a team. PayAttributes holds the per-country overlay records for
// geography-scoped products; not every country need appear.
type User struct {
	UserID        string              `json:"userId"`
	Email         string              `json:"email"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	TeamID        *string             `json:"teamId,omitempty"`
	PayAttributes []CountryAttributes `json:"kfPayAttributes,omitempty"`
}

// Team groups users within a tenant. Members holds user ids; semantically a
// set, stored in display order.
type Team struct {
	TeamID      string   `json:"teamId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

// CountryAttributes is one per-country override record on a user.
type CountryAttributes struct {
	Country    string        `json:"country"`
	Attributes PayAttributes `json:"attributes"`
}

// PayAttributes carries geography-scoped access settings. When AccessByLevel
// is false the override is "not configured" for that country and the
// dependent fields must all be nil.
type PayAttributes struct {
	AccessByLevel  bool           `json:"accessbyLevel"`
	AccessLevel    *string        `json:"accessLevel"`
	ReferenceLevel *string        `json:"referenceLevel"`
	BusinessUnits  []BusinessUnit `json:"businessUnits"`
}

// Validate enforces the not-configured invariant.
func (a PayAttributes) Validate() error {
	if a.AccessByLevel {
		return nil
	}
	if a.AccessLevel != nil || a.ReferenceLevel != nil || a.BusinessUnits != nil {
		return errors.New("pay attributes without access-by-level must leave level fields unset")
	}
	return nil
}

// BusinessUnit is a named unit with an access toggle.
type BusinessUnit struct {
	Name          string `json:"name"`
	AccessEnabled bool   `json:"accessEnabled"`
}

// CreateTenantRequest is the draft a new tenant is provisioned from.
type CreateTenantRequest struct {
	Name               string       `json:"name"`
	SubscribedProducts []string     `json:"subscribedProducts"`
	IdentityType       IdentityType `json:"identityType"`
	SSO                bool         `json:"sso"`
	ExistingClient     bool         `json:"isExistingClient"`
}

// Normalize applies the identity-type defaulting: new clients live on KF1;
// checking "existing client" while still on the KF1 default moves the client
// to Hub. The defaulting is one-way, an explicit non-default choice is kept.
func (r *CreateTenantRequest) Normalize() {
	if r.IdentityType == "" {
		r.IdentityType = IdentityKF1
	}
	if r.ExistingClient && r.IdentityType == IdentityKF1 {
		r.IdentityType = IdentityHub
	}
}

// Validate checks the draft after Normalize has run.
func (r *CreateTenantRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "client name is required"}
	}
	if len(r.SubscribedProducts) == 0 {
		return &ValidationError{Field: "subscribedProducts", Message: "at least one product must be selected"}
	}
	if r.ExistingClient {
		switch r.IdentityType {
		case IdentityHub, IdentityMultiRater, IdentityHubMultiRater:
		default:
			return &ValidationError{
				Field:   "identityType",
				Message: fmt.Sprintf("invalid identity type %q for an existing client", r.IdentityType),
			}
		}
	}
	return nil
}

// ValidationError reports a rejected field on a create or update request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
