// Package identity supplies the active tenant and storage mode to the rest
// of the application. In local mode the tenant is fixed by configuration;
// in remote mode it is resolved per request by the API middleware.
package identity

import (
	"context"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// Mode selects which storage backend a deployment runs against. The two
// backends are mutually exclusive per session; switching modes is an
// explicit migration action, not something the engine does on its own.
type Mode string

const (
	// ModeLocal runs against the embedded single-tenant SQLite store.
	ModeLocal Mode = "local"

	// ModeRemote runs against the multi-tenant PostgreSQL store.
	ModeRemote Mode = "remote"
)

// Valid reports whether m is a known storage mode.
func (m Mode) Valid() bool {
	return m == ModeLocal || m == ModeRemote
}

type contextKey struct{}

// WithTenant returns a context carrying the given tenant id.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, contextKey{}, tenantID)
}

// TenantFromContext extracts the active tenant id from the context.
// Every store call requires a tenant; a missing or empty tenant is an
// authentication failure, not a default.
func TenantFromContext(ctx context.Context) (string, error) {
	tenantID, ok := ctx.Value(contextKey{}).(string)
	if !ok || tenantID == "" {
		return "", apperrors.ErrUnauthenticated
	}
	return tenantID, nil
}
