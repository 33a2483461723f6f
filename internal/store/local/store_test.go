package local_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store/local"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestUpsertDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("second upsert for the same date keeps the original id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		first, err := store.UpsertDaily(ctx, testutil.TestTenantID, model.DailySnapshot{
			ID:          testutil.MakeID(),
			PortfolioID: portfolio.ID,
			Date:        "2024-01-01",
			TotalUsd:    1000,
		})
		if err != nil {
			t.Fatalf("First upsert failed: %v", err)
		}

		second, err := store.UpsertDaily(ctx, testutil.TestTenantID, model.DailySnapshot{
			ID:          testutil.MakeID(),
			PortfolioID: portfolio.ID,
			Date:        "2024-01-01",
			TotalUsd:    2000,
		})
		if err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		if second != first {
			t.Errorf("Expected effective id %s, got %s", first, second)
		}

		snapshots, err := store.ListDaily(ctx, testutil.TestTenantID, portfolio.ID)
		if err != nil {
			t.Fatalf("ListDaily failed: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
		}
		if snapshots[0].TotalUsd != 2000 {
			t.Errorf("Expected replaced total 2000, got %v", snapshots[0].TotalUsd)
		}
	})

	t.Run("different dates create separate rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		for _, date := range []string{"2024-01-01", "2024-01-02"} {
			if _, err := store.UpsertDaily(ctx, testutil.TestTenantID, model.DailySnapshot{
				ID:          testutil.MakeID(),
				PortfolioID: portfolio.ID,
				Date:        date,
				TotalUsd:    1000,
			}); err != nil {
				t.Fatalf("Upsert for %s failed: %v", date, err)
			}
		}

		snapshots, err := store.ListDaily(ctx, testutil.TestTenantID, portfolio.ID)
		if err != nil {
			t.Fatalf("ListDaily failed: %v", err)
		}
		if len(snapshots) != 2 {
			t.Errorf("Expected 2 snapshots, got %d", len(snapshots))
		}
	})

	t.Run("same date in another portfolio is independent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		first := testutil.NewPortfolio().WithName("First").Build(t, db)
		second := testutil.NewPortfolio().WithName("Second").Build(t, db)

		for _, p := range []model.Portfolio{first, second} {
			if _, err := store.UpsertDaily(ctx, testutil.TestTenantID, model.DailySnapshot{
				ID:          testutil.MakeID(),
				PortfolioID: p.ID,
				Date:        "2024-01-01",
				TotalUsd:    500,
			}); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}

		snapshots, err := store.ListDaily(ctx, testutil.TestTenantID, first.ID)
		if err != nil {
			t.Fatalf("ListDaily failed: %v", err)
		}
		if len(snapshots) != 1 {
			t.Errorf("Expected 1 snapshot in first portfolio, got %d", len(snapshots))
		}
	})
}

func TestUpdateDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("moving to an occupied date is a conflict", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		testutil.CreateDailySnapshot(t, db, model.DailySnapshot{
			PortfolioID: portfolio.ID, Date: "2024-01-01", TotalUsd: 1000,
		})
		target := testutil.CreateDailySnapshot(t, db, model.DailySnapshot{
			PortfolioID: portfolio.ID, Date: "2024-01-02", TotalUsd: 1100,
		})

		occupied := "2024-01-01"
		err := store.UpdateDaily(ctx, testutil.TestTenantID, target.ID, model.DailySnapshotPatch{Date: &occupied})
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Errorf("Expected conflict, got %v", err)
		}
	})

	t.Run("patching totals leaves the date alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		snap := testutil.CreateDailySnapshot(t, db, model.DailySnapshot{
			PortfolioID: portfolio.ID, Date: "2024-01-01", TotalUsd: 1000,
		})

		total := 1234.5
		if err := store.UpdateDaily(ctx, testutil.TestTenantID, snap.ID, model.DailySnapshotPatch{TotalUsd: &total}); err != nil {
			t.Fatalf("UpdateDaily failed: %v", err)
		}

		updated, err := store.GetDaily(ctx, testutil.TestTenantID, snap.ID)
		if err != nil {
			t.Fatalf("GetDaily failed: %v", err)
		}
		if updated.TotalUsd != 1234.5 {
			t.Errorf("Expected total 1234.5, got %v", updated.TotalUsd)
		}
		if updated.Date != "2024-01-01" {
			t.Errorf("Expected date unchanged, got %q", updated.Date)
		}
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)

		total := 1.0
		err := store.UpdateDaily(ctx, testutil.TestTenantID, testutil.MakeID(), model.DailySnapshotPatch{TotalUsd: &total})
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected snapshot not found, got %v", err)
		}
	})
}

func TestDeleteDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)

		if err := store.DeleteDaily(ctx, testutil.TestTenantID, testutil.MakeID()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("deleting frees the natural key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		snap := testutil.CreateDailySnapshot(t, db, model.DailySnapshot{
			PortfolioID: portfolio.ID, Date: "2024-01-01", TotalUsd: 1000,
		})
		if err := store.DeleteDaily(ctx, testutil.TestTenantID, snap.ID); err != nil {
			t.Fatalf("DeleteDaily failed: %v", err)
		}

		id, err := store.UpsertDaily(ctx, testutil.TestTenantID, model.DailySnapshot{
			ID:          testutil.MakeID(),
			PortfolioID: portfolio.ID,
			Date:        "2024-01-01",
			TotalUsd:    500,
		})
		if err != nil {
			t.Fatalf("Upsert after delete failed: %v", err)
		}
		if id == snap.ID {
			t.Error("Expected a fresh id after deletion")
		}
	})
}

func TestUpsertMonthly(t *testing.T) {
	ctx := context.Background()

	t.Run("second upsert for the same month keeps the original id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		first, err := store.UpsertMonthly(ctx, testutil.TestTenantID, model.MonthlySnapshot{
			ID:          testutil.MakeID(),
			PortfolioID: portfolio.ID,
			Month:       "2024-01",
			Year:        2024,
			TotalUsd:    5000,
		})
		if err != nil {
			t.Fatalf("First upsert failed: %v", err)
		}

		second, err := store.UpsertMonthly(ctx, testutil.TestTenantID, model.MonthlySnapshot{
			ID:          testutil.MakeID(),
			PortfolioID: portfolio.ID,
			Month:       "2024-01",
			Year:        2024,
			TotalUsd:    6000,
		})
		if err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}
		if second != first {
			t.Errorf("Expected effective id %s, got %s", first, second)
		}

		snapshots, err := store.ListMonthly(ctx, testutil.TestTenantID, portfolio.ID)
		if err != nil {
			t.Fatalf("ListMonthly failed: %v", err)
		}
		if len(snapshots) != 1 || snapshots[0].TotalUsd != 6000 {
			t.Errorf("Expected single replaced snapshot, got %+v", snapshots)
		}
	})

	t.Run("moving to an occupied month is a conflict", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		testutil.CreateMonthlySnapshot(t, db, model.MonthlySnapshot{
			PortfolioID: portfolio.ID, Month: "2024-01", Year: 2024, TotalUsd: 5000,
		})
		target := testutil.CreateMonthlySnapshot(t, db, model.MonthlySnapshot{
			PortfolioID: portfolio.ID, Month: "2024-02", Year: 2024, TotalUsd: 5500,
		})

		occupied := "2024-01"
		err := store.UpdateMonthly(ctx, testutil.TestTenantID, target.ID, model.MonthlySnapshotPatch{Month: &occupied})
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Errorf("Expected conflict, got %v", err)
		}
	})
}

func TestDeletePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the portfolio and everything under it", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewWallet(portfolio.ID).Build(t, db)
		testutil.CreateDailySnapshot(t, db, model.DailySnapshot{
			PortfolioID: portfolio.ID, Date: "2024-01-01", TotalUsd: 1000,
		})
		testutil.CreateMonthlySnapshot(t, db, model.MonthlySnapshot{
			PortfolioID: portfolio.ID, Month: "2024-01", Year: 2024, TotalUsd: 1000,
		})
		testutil.CreateGoal(t, db, model.Goal{
			PortfolioID: portfolio.ID, Name: "Moon", TargetValue: 100000, Color: "#10b981",
		})
		testutil.CreateJournalEntry(t, db, model.JournalEntry{
			PortfolioID: portfolio.ID, Date: "2024-01-01", Title: "First", Content: "Bought in", Mood: "bullish",
		})

		if err := store.DeletePortfolio(ctx, testutil.TestTenantID, portfolio.ID); err != nil {
			t.Fatalf("DeletePortfolio failed: %v", err)
		}

		for table, want := range map[string]int{
			"portfolio":        0,
			"wallet":           0,
			"daily_snapshot":   0,
			"monthly_snapshot": 0,
			"goal":             0,
			"journal_entry":    0,
		} {
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
				t.Fatalf("Count of %s failed: %v", table, err)
			}
			if count != want {
				t.Errorf("Expected %d rows in %s, got %d", want, table, count)
			}
		}
	})

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)

		if err := store.DeletePortfolio(ctx, testutil.TestTenantID, testutil.MakeID()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("leaves other portfolios untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		doomed := testutil.NewPortfolio().WithName("Doomed").Build(t, db)
		kept := testutil.NewPortfolio().WithName("Kept").Build(t, db)
		testutil.NewWallet(kept.ID).Build(t, db)

		if err := store.DeletePortfolio(ctx, testutil.TestTenantID, doomed.ID); err != nil {
			t.Fatalf("DeletePortfolio failed: %v", err)
		}

		if _, err := store.GetPortfolio(ctx, testutil.TestTenantID, kept.ID); err != nil {
			t.Errorf("Expected kept portfolio to survive, got %v", err)
		}
		wallets, err := store.ListWallets(ctx, testutil.TestTenantID, kept.ID)
		if err != nil {
			t.Fatalf("ListWallets failed: %v", err)
		}
		if len(wallets) != 1 {
			t.Errorf("Expected 1 surviving wallet, got %d", len(wallets))
		}
	})
}

func TestCompleteGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("first completion stamps and later ones are ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		goal := testutil.CreateGoal(t, db, model.Goal{
			PortfolioID: portfolio.ID, Name: "Moon", TargetValue: 100000, Color: "#10b981",
		})

		first, err := store.CompleteGoal(ctx, testutil.TestTenantID, goal.ID, "2024-06-01T12:00:00Z")
		if err != nil {
			t.Fatalf("First completion failed: %v", err)
		}
		if first != "2024-06-01T12:00:00Z" {
			t.Errorf("Expected first stamp, got %q", first)
		}

		second, err := store.CompleteGoal(ctx, testutil.TestTenantID, goal.ID, "2024-07-15T08:00:00Z")
		if err != nil {
			t.Fatalf("Second completion failed: %v", err)
		}
		if second != "2024-06-01T12:00:00Z" {
			t.Errorf("Expected original stamp to win, got %q", second)
		}
	})

	t.Run("unknown goal yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := local.New(db)

		_, err := store.CompleteGoal(ctx, testutil.TestTenantID, testutil.MakeID(), "2024-06-01T12:00:00Z")
		if !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("Expected goal not found, got %v", err)
		}
	})
}
