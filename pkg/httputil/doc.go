// Package httputil provides the JSON request/response helpers shared by the
// console's HTTP handlers.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteCreated(w, resource)
//	httputil.WriteNotFoundError(w, "client not found")
//	httputil.WriteValidationError(w, "clientName is required")
//
// # Pagination
//
// Every list endpoint returns the same envelope:
//
//	params := httputil.ParsePageParams(r)
//	httputil.WritePage(w, httputil.NewPage(items, total, params))
//
// # Request Parsing
//
//	var req tenants.CreateTenantRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // error response already written
//	}
//	search := httputil.ParseQueryString(r, "search", "")
//
// # Related Packages
//
//   - pkg/middleware: authentication, request-id and tenant-context middleware
package httputil
