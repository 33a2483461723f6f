package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		uuid       string
		wantStatus int
		wantNext   bool
	}{
		{"valid UUID passes through", "550e8400-e29b-41d4-a716-446655440000", http.StatusOK, true},
		{"malformed UUID is rejected", "not-a-uuid", http.StatusBadRequest, false},
		{"empty UUID is rejected", "", http.StatusBadRequest, false},
		{"truncated UUID is rejected", "550e8400-e29b-41d4", http.StatusBadRequest, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uuid", tc.uuid)
			req := httptest.NewRequest(http.MethodGet, "/api/portfolio/"+tc.uuid, nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if nextCalled != tc.wantNext {
				t.Errorf("Expected next called %v, got %v", tc.wantNext, nextCalled)
			}
		})
	}
}
