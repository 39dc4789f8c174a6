package middleware

import (
	"net/http"

	"github.com/kfone/console/pkg/contextkeys"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/observability"
	"github.com/kfone/console/pkg/session"
)

// SessionHeader carries the console session ID on every API request.
const SessionHeader = "X-Console-Session"

// SessionMiddleware resolves the console session and requires it to be
// authenticated. On first contact after a server restart the manager is
// recreated and persisted impersonation state is rehydrated.
func SessionMiddleware(registry *session.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" {
				httputil.WriteUnauthorized(w, "missing session header")
				return
			}

			mgr, ok := registry.Get(sessionID)
			if !ok {
				mgr = registry.GetOrCreate(sessionID)
				// Best effort: a failed restore just leaves a fresh session.
				_ = mgr.Restore(r.Context())
			}

			if !mgr.Authenticated() {
				httputil.WriteUnauthorized(w, "session is not signed in")
				return
			}

			ctx := contextkeys.WithSessionID(r.Context(), sessionID)
			ctx = observability.WithSessionID(ctx, sessionID)

			operator := mgr.Operator().Email
			ctx = contextkeys.WithOperator(ctx, operator)
			ctx = observability.WithOperator(ctx, operator)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
