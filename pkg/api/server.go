package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/contextkeys"
	"github.com/kfone/console/pkg/middleware"
	"github.com/kfone/console/pkg/observability"
	"github.com/kfone/console/pkg/overlay"
	"github.com/kfone/console/pkg/roles"
	"github.com/kfone/console/pkg/session"
	"github.com/kfone/console/pkg/tenants"
	"github.com/kfone/console/pkg/wizard"
)

// AuthProvider is the identity-provider collaborator the auth handlers talk
// to. *keycloak.Provider satisfies it.
type AuthProvider interface {
	AuthURL(state, nonce, loginHint string) string
	HandleCallback(ctx context.Context, code, nonce string) (session.Identity, session.TokenPair, error)
	Refresh(ctx context.Context, current session.TokenPair, minValidity time.Duration) (session.TokenPair, error)
}

// UserImpersonator resolves a target user by email and exchanges the
// operator's token for one scoped to that user. *keycloak.Impersonator
// satisfies it.
type UserImpersonator interface {
	Impersonate(ctx context.Context, operatorToken, email string) (session.Identity, session.TokenPair, error)
}

// Options carries the server's collaborators. Tenants, Roles, Catalog and
// Logger are required; the rest degrade gracefully when nil.
type Options struct {
	Logger  *observability.Logger
	Metrics *observability.Metrics

	Tenants tenants.Store
	Roles   roles.Store
	Catalog *catalog.Holder

	// OverlayPath enables POST /catalog/reload when set.
	OverlayPath string

	// Sessions plus Provider turn authentication on. With a nil Provider
	// every route is reachable and the session header only keys wizard
	// drafts.
	Sessions     *session.Registry
	Provider     AuthProvider
	Impersonator UserImpersonator

	// Audit receives events for mutating operations; AuditSearch backs the
	// GET /audit endpoint. Either may be nil.
	Audit       audit.Recorder
	AuditSearch *audit.Store

	// ImpersonationLimiter guards the impersonation endpoint across
	// replicas. When nil an in-process token bucket is used.
	ImpersonationLimiter *middleware.DistributedRateLimiter

	AllowedOrigins []string
}

// Server routes console API requests to the domain stores.
type Server struct {
	router *mux.Router
	logger *observability.Logger

	opts Options

	// Per-session role drafts. A draft belongs to one session; the map is
	// the only shared state.
	wizardMu sync.Mutex
	wizards  map[string]*wizard.Workflow

	// Mutable per-product feature toggle lists, created on first access.
	toggleMu sync.Mutex
	toggles  map[string]*overlay.ToggleSet

	// Pending login states, keyed by the state parameter round-tripped
	// through Keycloak.
	loginMu sync.Mutex
	logins  map[string]pendingLogin

	impLimiter *middleware.RateLimiter
}

type pendingLogin struct {
	nonce     string
	sessionID string
	expires   time.Time
}

const loginStateTTL = 10 * time.Minute

// NewServer builds the router. Call Router to get the serving handler.
func NewServer(opts Options) *Server {
	if opts.Audit == nil {
		opts.Audit = audit.NopRecorder{}
	}
	s := &Server{
		logger:     opts.Logger,
		opts:       opts,
		wizards:    make(map[string]*wizard.Workflow),
		toggles:    make(map[string]*overlay.ToggleSet),
		logins:     make(map[string]pendingLogin),
		impLimiter: middleware.NewRateLimiter(middleware.ImpersonationRateLimitConfig()),
	}
	s.router = s.routes()
	return s
}

// Router returns the handler with the full middleware chain applied.
func (s *Server) Router() http.Handler {
	chain := middleware.Chain(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(s.logger),
		middleware.RecoveryMiddleware(s.logger),
		middleware.CORSMiddleware(s.opts.AllowedOrigins),
	)
	handler := chain(s.router)
	if s.opts.Metrics != nil {
		handler = observability.HTTPMetricsMiddleware(s.opts.Metrics)(handler)
	}
	return handler
}

func (s *Server) routes() *mux.Router {
	root := mux.NewRouter()

	// Sign-in endpoints stay outside the session guard; the callback
	// arrives as a browser redirect without the session header.
	if s.opts.Provider != nil {
		public := root.PathPrefix("/api/v1/auth").Subrouter()
		public.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet)
		public.HandleFunc("/callback", s.handleCallback).Methods(http.MethodGet)
	}

	api := root.PathPrefix("/api/v1").Subrouter()
	if s.authEnabled() {
		api.Use(mux.MiddlewareFunc(middleware.SessionMiddleware(s.opts.Sessions)))

		auth := api.PathPrefix("/auth").Subrouter()
		auth.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
		auth.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
		auth.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

		impersonate := s.impersonationLimit()(http.HandlerFunc(s.handleImpersonate))
		auth.Handle("/impersonate", impersonate).Methods(http.MethodPost)
		auth.HandleFunc("/impersonate/stop", s.handleStopImpersonation).Methods(http.MethodPost)
	} else {
		api.Use(mux.MiddlewareFunc(localSessionMiddleware))
	}

	api.HandleFunc("/clients", s.handleListClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", s.handleCreateClient).Methods(http.MethodPost)

	client := api.PathPrefix("/clients/{client_id}").Subrouter()
	client.Use(mux.MiddlewareFunc(middleware.TenantContextMiddleware(s.opts.Tenants)))
	client.HandleFunc("", s.handleGetClient).Methods(http.MethodGet)
	client.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	client.HandleFunc("/users/{user_id}", s.handleGetUser).Methods(http.MethodGet)
	client.HandleFunc("/users/{user_id}/team", s.handleGetPrimaryTeam).Methods(http.MethodGet)
	client.HandleFunc("/users/{user_id}/countries", s.handleListUserCountries).Methods(http.MethodGet)
	client.HandleFunc("/users/{user_id}/countries/{country}", s.handleGetCountryAttributes).Methods(http.MethodGet)
	client.HandleFunc("/teams", s.handleListTeams).Methods(http.MethodGet)
	client.HandleFunc("/teams/{team_id}", s.handleGetTeam).Methods(http.MethodGet)
	client.HandleFunc("/roles", s.handleListRoles).Methods(http.MethodGet)
	client.HandleFunc("/roles", s.handleSaveRole).Methods(http.MethodPost)

	api.HandleFunc("/roles/{role_id}", s.handleGetRole).Methods(http.MethodGet)
	api.HandleFunc("/roles/{role_id}", s.handleDeleteRole).Methods(http.MethodDelete)

	api.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{product}/categories", s.handleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/products/{product}/categories/{category}/resources", s.handleListResources).Methods(http.MethodGet)
	api.HandleFunc("/products/{product}/toggles", s.handleListToggles).Methods(http.MethodGet)
	api.HandleFunc("/products/{product}/toggles", s.handleSetToggle).Methods(http.MethodPut)
	api.HandleFunc("/permission-types", s.handleListPermissionTypes).Methods(http.MethodGet)
	api.HandleFunc("/countries", s.handleListCountries).Methods(http.MethodGet)

	if s.opts.OverlayPath != "" {
		api.HandleFunc("/catalog/reload", s.handleCatalogReload).Methods(http.MethodPost)
	}

	// Wizard routes: one draft per session, keyed by the session header.
	wiz := api.PathPrefix("/wizard").Subrouter()
	wiz.HandleFunc("", s.handleWizardState).Methods(http.MethodGet)
	wiz.HandleFunc("/details", s.handleWizardDetails).Methods(http.MethodPut)
	wiz.HandleFunc("/next", s.handleWizardNext).Methods(http.MethodPost)
	wiz.HandleFunc("/back", s.handleWizardBack).Methods(http.MethodPost)
	wiz.HandleFunc("/cancel", s.handleWizardCancel).Methods(http.MethodPost)
	wiz.HandleFunc("/product", s.handleWizardSelectProduct).Methods(http.MethodPut)
	wiz.HandleFunc("/category", s.handleWizardSelectCategory).Methods(http.MethodPut)
	wiz.HandleFunc("/grid", s.handleWizardGrid).Methods(http.MethodGet)
	wiz.HandleFunc("/grid/cell", s.handleWizardSetCell).Methods(http.MethodPut)
	wiz.HandleFunc("/grid/row", s.handleWizardSetRow).Methods(http.MethodPut)
	wiz.HandleFunc("/grid/column", s.handleWizardSetColumn).Methods(http.MethodPut)
	wiz.HandleFunc("/review", s.handleWizardReview).Methods(http.MethodGet)

	if s.opts.AuditSearch != nil {
		api.HandleFunc("/audit", s.handleSearchAudit).Methods(http.MethodGet)
	}

	return root
}

func (s *Server) authEnabled() bool {
	return s.opts.Provider != nil && s.opts.Sessions != nil
}

func (s *Server) impersonationLimit() middleware.Middleware {
	if s.opts.ImpersonationLimiter != nil {
		return middleware.DistributedRateLimitMiddleware(s.opts.ImpersonationLimiter)
	}
	return middleware.RateLimitMiddleware(s.impLimiter)
}

// localSessionMiddleware stands in for the session guard when authentication
// is disabled. The session header still keys wizard drafts so concurrent
// operators do not share one.
func localSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(middleware.SessionHeader)
		if sessionID == "" {
			sessionID = "local"
		}
		ctx := contextkeys.WithSessionID(r.Context(), sessionID)
		ctx = contextkeys.WithOperator(ctx, "local")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionManager resolves the calling session's manager. Only meaningful
// behind the session guard.
func (s *Server) sessionManager(r *http.Request) (*session.Manager, bool) {
	if s.opts.Sessions == nil {
		return nil, false
	}
	sessionID := contextkeys.GetSessionID(r.Context())
	if sessionID == "" {
		return nil, false
	}
	return s.opts.Sessions.Get(sessionID)
}

// record writes an audit event and bumps the per-action counter. Audit
// failures are logged, never surfaced to the caller.
func (s *Server) record(ctx context.Context, event *audit.Event) {
	if err := s.opts.Audit.Record(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event_type", string(event.EventType)).
			Error("Failed to record audit event")
		return
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.AuditEventsTotal.WithLabelValues(string(event.EventType)).Inc()
	}
}
