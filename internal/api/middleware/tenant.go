package middleware

import (
	"net/http"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
)

// TenantHeader carries the caller's tenant identifier in remote mode.
const TenantHeader = "X-Tenant-ID"

// Tenant resolves the active tenant and stores it on the request context.
//
// In local mode the embedded database file is the tenant boundary, so every
// request runs as the configured default tenant. In remote mode the tenant
// comes from the X-Tenant-ID header, supplied by the authentication layer in
// front of this service; a request without one is rejected with 401.
func Tenant(mode identity.Mode, defaultTenantID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := defaultTenantID
			if mode == identity.ModeRemote {
				tenantID = r.Header.Get(TenantHeader)
			}

			if tenantID == "" {
				response.RespondError(w, http.StatusUnauthorized, "tenant identifier is required", "")
				return
			}

			ctx := identity.WithTenant(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
