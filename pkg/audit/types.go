package audit

import (
	"context"
	"time"

	"github.com/kfone/console/pkg/contextkeys"
)

// EventType categorizes an audit event
type EventType string

const (
	// Authentication events
	EventAuthLogin         EventType = "auth.login"
	EventAuthLogout        EventType = "auth.logout"
	EventAuthRefreshFailed EventType = "auth.refresh_failed"

	// Impersonation events
	EventImpersonationStart  EventType = "impersonation.start"
	EventImpersonationStop   EventType = "impersonation.stop"
	EventImpersonationDenied EventType = "impersonation.denied"

	// Tenant catalog events
	EventTenantCreate EventType = "tenant.create"

	// Role authoring events
	EventRoleTemplateSave   EventType = "role.save"
	EventRoleTemplateDelete EventType = "role.delete"

	// Catalog events
	EventCatalogReload EventType = "catalog.reload"
)

// EventStatus represents the outcome of an event
type EventStatus string

const (
	StatusSuccess EventStatus = "success"
	StatusFailure EventStatus = "failure"
	StatusDenied  EventStatus = "denied"
)

// Event is a single audit log entry
type Event struct {
	ID        int64       `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	EventType EventType   `json:"event_type"`
	Status    EventStatus `json:"status"`

	// Actor
	Operator  string `json:"operator,omitempty"`
	SessionID string `json:"session_id,omitempty"`

	// Scope
	TenantID   string `json:"tenant_id,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`

	// Request context
	RequestID string `json:"request_id,omitempty"`

	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewEvent builds an event stamped with the actor details carried in the
// request context.
func NewEvent(ctx context.Context, eventType EventType, status EventStatus) *Event {
	return &Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Status:    status,
		Operator:  contextkeys.GetOperator(ctx),
		SessionID: contextkeys.GetSessionID(ctx),
		RequestID: contextkeys.GetRequestID(ctx),
	}
}

// WithTenant scopes the event to a tenant.
func (e *Event) WithTenant(tenantID string) *Event {
	e.TenantID = tenantID
	return e
}

// WithResource names the record the event concerns.
func (e *Event) WithResource(resourceID string) *Event {
	e.ResourceID = resourceID
	return e
}

// WithMessage attaches a human-readable summary.
func (e *Event) WithMessage(message string) *Event {
	e.Message = message
	return e
}

// WithError attaches the failure cause.
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}

// SearchFilter narrows a query over recorded events
type SearchFilter struct {
	Start      *time.Time
	End        *time.Time
	Operator   string
	TenantID   string
	EventTypes []EventType
	Status     EventStatus

	Limit  int
	Offset int
}

// Recorder is the write side of the audit log. Handlers depend on this
// interface so tests can capture events without a database.
type Recorder interface {
	Record(ctx context.Context, event *Event) error
}

// NopRecorder discards events. Used when auditing is disabled in tests.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, event *Event) error { return nil }
