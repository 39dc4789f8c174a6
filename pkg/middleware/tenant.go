package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kfone/console/pkg/contextkeys"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/tenants"
)

// TenantContextMiddleware resolves the {client_id} path variable through the
// tenant store and rejects unknown tenants before the handler runs. Routes
// without a {client_id} variable pass through untouched.
func TenantContextMiddleware(store tenants.Store) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)
			clientID, ok := vars["client_id"]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			tenant, err := store.GetTenant(r.Context(), clientID)
			if err != nil {
				if errors.Is(err, tenants.ErrTenantNotFound) {
					httputil.WriteNotFoundError(w, "client not found")
					return
				}
				httputil.WriteInternalError(w, err)
				return
			}

			ctx := contextkeys.WithTenant(r.Context(), tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromRequest returns the tenant resolved by TenantContextMiddleware,
// or nil when the route carries no tenant scope.
func TenantFromRequest(r *http.Request) *tenants.Tenant {
	v := r.Context().Value(contextkeys.TenantKey)
	if v == nil {
		return nil
	}
	tenant, ok := v.(*tenants.Tenant)
	if !ok {
		return nil
	}
	return tenant
}
