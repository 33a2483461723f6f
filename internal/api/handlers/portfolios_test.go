package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// withTenant attaches the test tenant the way the tenant middleware would.
func withTenant(req *http.Request) *http.Request {
	return req.WithContext(testutil.TenantContext())
}

// withUUID injects a chi route parameter the way the router would.
func withUUID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPortfolioHandler_Portfolios(t *testing.T) {
	t.Run("returns 200 with empty array", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		req := withTenant(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		var response []model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("returns all portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		first := testutil.NewPortfolio().WithName("First").Build(t, db)
		second := testutil.NewPortfolio().WithName("Second").Build(t, db)

		req := withTenant(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 portfolios, got %d", len(response))
		}

		got := map[string]string{response[0].ID: response[0].Name, response[1].ID: response[1].Name}
		if got[first.ID] != "First" || got[second.ID] != "Second" {
			t.Errorf("Unexpected portfolios: %v", got)
		}
	})

	t.Run("returns 401 without a tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		body := `{"name":"Main","color":"#3b82f6"}`
		req := withTenant(httptest.NewRequest(http.MethodPost, "/api/portfolio", strings.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID == "" {
			t.Error("Expected a generated id")
		}
		if response.Name != "Main" || response.Color != "#3b82f6" {
			t.Errorf("Unexpected portfolio: %+v", response)
		}
		if response.CreatedAt == "" {
			t.Error("Expected a creation timestamp")
		}
	})

	t.Run("rejects missing name with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		req := withTenant(httptest.NewRequest(http.MethodPost, "/api/portfolio",
			strings.NewReader(`{"color":"#3b82f6"}`)))
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		req := withTenant(httptest.NewRequest(http.MethodPost, "/api/portfolio",
			strings.NewReader(`{not json`)))
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_Portfolio(t *testing.T) {
	t.Run("returns a portfolio by id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)
		portfolio := testutil.NewPortfolio().WithName("Main").Build(t, db)

		req := withUUID(withTenant(httptest.NewRequest(http.MethodGet, "/api/portfolio/"+portfolio.ID, nil)), portfolio.ID)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID != portfolio.ID {
			t.Errorf("Expected id %s, got %s", portfolio.ID, response.ID)
		}
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)

		id := testutil.MakeID()
		req := withUUID(withTenant(httptest.NewRequest(http.MethodGet, "/api/portfolio/"+id, nil)), id)
		w := httptest.NewRecorder()

		handler.Portfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if _, hasError := response["error"]; !hasError {
			t.Error("Expected error field in response")
		}
	})
}

func TestPortfolioHandler_DeletePortfolio(t *testing.T) {
	t.Run("deletes and returns 204", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		handler := handlers.NewPortfolioHandler(svc)
		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewWallet(portfolio.ID).Build(t, db)

		req := withUUID(withTenant(httptest.NewRequest(http.MethodDelete, "/api/portfolio/"+portfolio.ID, nil)), portfolio.ID)
		w := httptest.NewRecorder()

		handler.DeletePortfolio(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM wallet").Scan(&count); err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected cascade to remove wallets, found %d", count)
		}
	})
}
