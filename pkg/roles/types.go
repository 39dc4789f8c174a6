package roles

import (
	"context"
	"errors"
	"time"

	"github.com/kfone/console/pkg/matrix"
)

// UserType scopes who a role template applies to.
type UserType string

const (
	GenericUsers       UserType = "Generic Users"
	KornFerryOnlyUsers UserType = "Kornferry Only Users"
)

// RoleType is the broad privilege class of a template.
type RoleType string

const (
	RoleAdmin RoleType = "Admin"
	RoleUser  RoleType = "User"
)

// Template is a finished, persistable role definition.
type Template struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenantId,omitempty"`
	RoleName    string         `json:"roleName"`
	UserType    UserType       `json:"userType"`
	RoleType    RoleType       `json:"roleType"`
	Products    []string       `json:"products"`
	Permissions []matrix.Entry `json:"permissions"`
	CreatedBy   string         `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ErrTemplateNotFound is returned by template lookups.
var ErrTemplateNotFound = errors.New("role template not found")

// Store persists role templates.
type Store interface {
	Create(ctx context.Context, tpl *Template) error
	Get(ctx context.Context, id string) (*Template, error)
	// List returns templates filtered by tenant id (empty matches all),
	// newest first.
	List(ctx context.Context, tenantID string) ([]Template, error)
	Delete(ctx context.Context, id string) error
}

// BuiltInTemplates returns the starter templates every deployment ships with.
// They carry no permission grid; operators clone and refine them in the
// wizard.
func BuiltInTemplates() []Template {
	return []Template{
		{
			ID:       "builtin-client-admin",
			RoleName: "Client Admin",
			UserType: GenericUsers,
			RoleType: RoleAdmin,
			Products: []string{"Assess", "Architect", "Profile Manager"},
		},
		{
			ID:       "builtin-assess-user",
			RoleName: "Assess User",
			UserType: GenericUsers,
			RoleType: RoleUser,
			Products: []string{"Assess"},
		},
		{
			ID:       "builtin-pay-analyst",
			RoleName: "Pay Analyst",
			UserType: KornFerryOnlyUsers,
			RoleType: RoleUser,
			Products: []string{"Pay", "Pay Equity"},
		},
	}
}
