package service_test

import (
	"errors"
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestUpsertDailySnapshot(t *testing.T) {
	ctx := testutil.TenantContext()

	t.Run("computes total and variation against the previous day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		portfolio := testutil.NewPortfolio().WithName("Main").Build(t, db)
		wallet := testutil.NewWallet(portfolio.ID).WithName("Cold").Build(t, db)

		first, err := svc.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID: portfolio.ID,
			Date:        "2024-01-01",
			WalletBalances: []request.WalletBalanceRequest{
				{WalletID: wallet.ID, ValueUsd: 1000},
			},
		})
		if err != nil {
			t.Fatalf("First upsert failed: %v", err)
		}
		if first.TotalUsd != 1000 {
			t.Errorf("Expected total 1000, got %v", first.TotalUsd)
		}
		if first.VariationUsd != 1000 || first.VariationPercent != 100 {
			t.Errorf("Expected first-day variation 1000/100%%, got %v/%v", first.VariationUsd, first.VariationPercent)
		}

		second, err := svc.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID: portfolio.ID,
			Date:        "2024-01-02",
			WalletBalances: []request.WalletBalanceRequest{
				{WalletID: wallet.ID, ValueUsd: 1100},
			},
		})
		if err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}
		if second.TotalUsd != 1100 {
			t.Errorf("Expected total 1100, got %v", second.TotalUsd)
		}
		if second.VariationUsd != 100 {
			t.Errorf("Expected variation 100, got %v", second.VariationUsd)
		}
		if second.VariationPercent != 10 {
			t.Errorf("Expected variation 10%%, got %v", second.VariationPercent)
		}
	})

	t.Run("replacing a day keeps the snapshot id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		wallet := testutil.NewWallet(portfolio.ID).Build(t, db)

		first, err := svc.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID:    portfolio.ID,
			Date:           "2024-01-01",
			WalletBalances: []request.WalletBalanceRequest{{WalletID: wallet.ID, ValueUsd: 1000}},
		})
		if err != nil {
			t.Fatalf("First upsert failed: %v", err)
		}

		second, err := svc.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID:    portfolio.ID,
			Date:           "2024-01-01",
			WalletBalances: []request.WalletBalanceRequest{{WalletID: wallet.ID, ValueUsd: 2000}},
		})
		if err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("Expected id %s to survive replacement, got %s", first.ID, second.ID)
		}
		if second.TotalUsd != 2000 {
			t.Errorf("Expected replaced total 2000, got %v", second.TotalUsd)
		}
	})

	t.Run("unknown portfolio yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		_, err := svc.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID: testutil.MakeID(),
			Date:        "2024-01-01",
		})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected portfolio not found, got %v", err)
		}
	})
}

func TestUpsertMonthlySnapshot(t *testing.T) {
	ctx := testutil.TenantContext()

	t.Run("computes delta against the preceding month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		january, err := svc.UpsertMonthlySnapshot(ctx, request.UpsertMonthlySnapshotRequest{
			PortfolioID: portfolio.ID,
			Month:       "2024-01",
			TotalUsd:    5000,
		})
		if err != nil {
			t.Fatalf("January upsert failed: %v", err)
		}
		if january.Year != 2024 {
			t.Errorf("Expected year 2024, got %d", january.Year)
		}
		if january.DeltaUsd != 5000 || january.DeltaPercent != 100 {
			t.Errorf("Expected first-month delta 5000/100%%, got %v/%v", january.DeltaUsd, january.DeltaPercent)
		}

		february, err := svc.UpsertMonthlySnapshot(ctx, request.UpsertMonthlySnapshotRequest{
			PortfolioID: portfolio.ID,
			Month:       "2024-02",
			TotalUsd:    5500,
		})
		if err != nil {
			t.Fatalf("February upsert failed: %v", err)
		}
		if february.DeltaUsd != 500 {
			t.Errorf("Expected delta 500, got %v", february.DeltaUsd)
		}
		if february.DeltaPercent != 10 {
			t.Errorf("Expected delta 10%%, got %v", february.DeltaPercent)
		}
	})

	t.Run("january compares against december of the prior year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		if _, err := svc.UpsertMonthlySnapshot(ctx, request.UpsertMonthlySnapshotRequest{
			PortfolioID: portfolio.ID,
			Month:       "2023-12",
			TotalUsd:    4000,
		}); err != nil {
			t.Fatalf("December upsert failed: %v", err)
		}

		january, err := svc.UpsertMonthlySnapshot(ctx, request.UpsertMonthlySnapshotRequest{
			PortfolioID: portfolio.ID,
			Month:       "2024-01",
			TotalUsd:    5000,
		})
		if err != nil {
			t.Fatalf("January upsert failed: %v", err)
		}
		if january.DeltaUsd != 1000 {
			t.Errorf("Expected delta 1000, got %v", january.DeltaUsd)
		}
		if january.DeltaPercent != 25 {
			t.Errorf("Expected delta 25%%, got %v", january.DeltaPercent)
		}
	})
}

func TestGetPerformanceMetrics(t *testing.T) {
	ctx := testutil.TenantContext()

	t.Run("full flow from snapshots to metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		snapshots := testutil.NewTestSnapshotService(t, db)
		analytics := testutil.NewTestAnalyticsService(t, db)
		portfolio := testutil.NewPortfolio().WithName("Main").WithColor("#3b82f6").Build(t, db)
		wallet := testutil.NewWallet(portfolio.ID).WithName("Cold").Build(t, db)

		for _, day := range []struct {
			date  string
			value float64
		}{
			{"2024-01-01", 1000},
			{"2024-01-02", 1100},
		} {
			if _, err := snapshots.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
				PortfolioID:    portfolio.ID,
				Date:           day.date,
				WalletBalances: []request.WalletBalanceRequest{{WalletID: wallet.ID, ValueUsd: day.value}},
			}); err != nil {
				t.Fatalf("Upsert for %s failed: %v", day.date, err)
			}
		}

		metrics, err := analytics.GetPerformanceMetrics(ctx, portfolio.ID)
		if err != nil {
			t.Fatalf("GetPerformanceMetrics failed: %v", err)
		}

		if metrics.TotalUsd != 1100 {
			t.Errorf("Expected total 1100, got %v", metrics.TotalUsd)
		}
		if metrics.Change24h != 100 {
			t.Errorf("Expected 24h change 100, got %v", metrics.Change24h)
		}
		if metrics.Change24hPercent != 10 {
			t.Errorf("Expected 24h change 10%%, got %v", metrics.Change24hPercent)
		}
		if metrics.Ath != 1100 || metrics.AthDate != "2024-01-02" {
			t.Errorf("Expected ath 1100 on 2024-01-02, got %v on %q", metrics.Ath, metrics.AthDate)
		}
	})

	t.Run("portfolio without snapshots yields zero metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		analytics := testutil.NewTestAnalyticsService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		metrics, err := analytics.GetPerformanceMetrics(ctx, portfolio.ID)
		if err != nil {
			t.Fatalf("GetPerformanceMetrics failed: %v", err)
		}
		if metrics.TotalUsd != 0 || metrics.Ath != 0 {
			t.Errorf("Expected zero metrics, got %+v", metrics)
		}
	})
}

func TestGetWalletAllocations(t *testing.T) {
	ctx := testutil.TenantContext()

	t.Run("uses the latest snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		snapshots := testutil.NewTestSnapshotService(t, db)
		analytics := testutil.NewTestAnalyticsService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		cold := testutil.NewWallet(portfolio.ID).WithName("Cold").Build(t, db)
		hot := testutil.NewWallet(portfolio.ID).WithName("Hot").Build(t, db)

		if _, err := snapshots.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID: portfolio.ID,
			Date:        "2024-01-01",
			WalletBalances: []request.WalletBalanceRequest{
				{WalletID: cold.ID, ValueUsd: 750},
				{WalletID: hot.ID, ValueUsd: 250},
			},
		}); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		allocations, err := analytics.GetWalletAllocations(ctx, portfolio.ID)
		if err != nil {
			t.Fatalf("GetWalletAllocations failed: %v", err)
		}
		if len(allocations) != 2 {
			t.Fatalf("Expected 2 allocations, got %d", len(allocations))
		}

		sum := 0.0
		for _, a := range allocations {
			sum += a.Percentage
		}
		if sum < 99.999 || sum > 100.001 {
			t.Errorf("Expected percentages to sum to 100, got %v", sum)
		}
	})

	t.Run("portfolio without snapshots yields empty list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		analytics := testutil.NewTestAnalyticsService(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		allocations, err := analytics.GetWalletAllocations(ctx, portfolio.ID)
		if err != nil {
			t.Fatalf("GetWalletAllocations failed: %v", err)
		}
		if len(allocations) != 0 {
			t.Errorf("Expected no allocations, got %d", len(allocations))
		}
	})
}
