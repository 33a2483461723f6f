package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
)

func TestTenantMiddleware(t *testing.T) {
	t.Run("local mode uses default tenant", func(t *testing.T) {
		var gotTenant string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTenant, _ = identity.TenantFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.Tenant(identity.ModeLocal, "local")(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if gotTenant != "local" {
			t.Errorf("Expected tenant %q, got %q", "local", gotTenant)
		}
	})

	t.Run("remote mode reads header", func(t *testing.T) {
		var gotTenant string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTenant, _ = identity.TenantFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.Tenant(identity.ModeRemote, "local")(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.TenantHeader, "user-42")
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if gotTenant != "user-42" {
			t.Errorf("Expected tenant %q, got %q", "user-42", gotTenant)
		}
	})

	t.Run("remote mode without header is rejected", func(t *testing.T) {
		handlerCalled := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		mw := middleware.Tenant(identity.ModeRemote, "local")(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}
