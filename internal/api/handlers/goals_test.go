package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)
		handler := handlers.NewGoalHandler(svc)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := `{"name":"Moon","targetValue":100000,"color":"#10b981"}`
		req := withTenant(httptest.NewRequest(http.MethodPost, "/api/portfolio/"+portfolio.ID+"/goal", strings.NewReader(body)))
		req = withUUID(req, portfolio.ID)
		w := httptest.NewRecorder()

		handler.CreateGoal(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Goal
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Name != "Moon" || response.TargetValue != 100000 {
			t.Errorf("Unexpected goal: %+v", response)
		}
		if response.CompletedAt != "" {
			t.Error("Expected new goal to be incomplete")
		}
	})

	t.Run("rejects non-positive target with 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)
		handler := handlers.NewGoalHandler(svc)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := `{"name":"Moon","targetValue":0,"color":"#10b981"}`
		req := withTenant(httptest.NewRequest(http.MethodPost, "/api/portfolio/"+portfolio.ID+"/goal", strings.NewReader(body)))
		req = withUUID(req, portfolio.ID)
		w := httptest.NewRecorder()

		handler.CreateGoal(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestGoalHandler_CompleteGoal(t *testing.T) {
	t.Run("stamps completion once and keeps the first stamp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)
		handler := handlers.NewGoalHandler(svc)
		portfolio := testutil.NewPortfolio().Build(t, db)
		goal := testutil.CreateGoal(t, db, model.Goal{
			PortfolioID: portfolio.ID, Name: "Moon", TargetValue: 100000, Color: "#10b981",
		})

		complete := func() model.Goal {
			t.Helper()
			req := withUUID(withTenant(httptest.NewRequest(http.MethodPost, "/api/goal/"+goal.ID+"/complete", nil)), goal.ID)
			w := httptest.NewRecorder()
			handler.CompleteGoal(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			var response model.Goal
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			return response
		}

		first := complete()
		if first.CompletedAt == "" {
			t.Fatal("Expected a completion timestamp")
		}

		second := complete()
		if second.CompletedAt != first.CompletedAt {
			t.Errorf("Expected original stamp %q to win, got %q", first.CompletedAt, second.CompletedAt)
		}
	})

	t.Run("returns 404 for an unknown goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)
		handler := handlers.NewGoalHandler(svc)

		id := testutil.MakeID()
		req := withUUID(withTenant(httptest.NewRequest(http.MethodPost, "/api/goal/"+id+"/complete", nil)), id)
		w := httptest.NewRecorder()

		handler.CompleteGoal(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
