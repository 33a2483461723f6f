package analytics

import (
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func daily(date string, total float64) model.DailySnapshot {
	return model.DailySnapshot{Date: date, TotalUsd: total}
}

func TestVariation(t *testing.T) {
	t.Run("computes amount and percent", func(t *testing.T) {
		amount, percent := Variation(1100, 1000)
		if amount != 100 {
			t.Errorf("Expected amount 100, got %v", amount)
		}
		if percent != 10 {
			t.Errorf("Expected percent 10, got %v", percent)
		}
	})

	t.Run("zero previous with growth yields 100 percent", func(t *testing.T) {
		amount, percent := Variation(500, 0)
		if amount != 500 {
			t.Errorf("Expected amount 500, got %v", amount)
		}
		if percent != 100 {
			t.Errorf("Expected percent 100, got %v", percent)
		}
	})

	t.Run("zero previous and zero current yields zero percent", func(t *testing.T) {
		amount, percent := Variation(0, 0)
		if amount != 0 || percent != 0 {
			t.Errorf("Expected 0/0, got %v/%v", amount, percent)
		}
	})

	t.Run("negative change", func(t *testing.T) {
		amount, percent := Variation(900, 1000)
		if amount != -100 {
			t.Errorf("Expected amount -100, got %v", amount)
		}
		if percent != -10 {
			t.Errorf("Expected percent -10, got %v", percent)
		}
	})
}

func TestPerformanceMetrics(t *testing.T) {
	t.Run("empty series yields zero metrics", func(t *testing.T) {
		metrics := PerformanceMetrics(nil)
		if metrics.TotalUsd != 0 || metrics.Ath != 0 || metrics.AthDate != "" {
			t.Errorf("Expected zero metrics, got %+v", metrics)
		}
	})

	t.Run("single snapshot has no changes", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{daily("2024-01-01", 1000)})

		if metrics.TotalUsd != 1000 {
			t.Errorf("Expected total 1000, got %v", metrics.TotalUsd)
		}
		if metrics.Change24h != 0 || metrics.Change24hPercent != 0 {
			t.Errorf("Expected no 24h change, got %v/%v", metrics.Change24h, metrics.Change24hPercent)
		}
		if metrics.Ath != 1000 || metrics.AthDate != "2024-01-01" {
			t.Errorf("Expected ath 1000 on 2024-01-01, got %v on %q", metrics.Ath, metrics.AthDate)
		}
	})

	t.Run("change24h compares against the previous entry", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-01", 1000),
			daily("2024-01-02", 1100),
		})

		if metrics.Change24h != 100 {
			t.Errorf("Expected 24h change 100, got %v", metrics.Change24h)
		}
		if metrics.Change24hPercent != 10 {
			t.Errorf("Expected 24h percent 10, got %v", metrics.Change24hPercent)
		}
	})

	t.Run("input order does not matter", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-02", 1100),
			daily("2024-01-01", 1000),
		})

		if metrics.TotalUsd != 1100 {
			t.Errorf("Expected latest total 1100, got %v", metrics.TotalUsd)
		}
		if metrics.Change24h != 100 {
			t.Errorf("Expected 24h change 100, got %v", metrics.Change24h)
		}
	})

	t.Run("change7d uses the snapshot at or before the boundary", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-01", 800),
			daily("2024-01-08", 1000),
			daily("2024-01-14", 1100),
			daily("2024-01-15", 1200),
		})

		// Boundary is 2024-01-08; that snapshot qualifies exactly.
		if metrics.Change7d != 200 {
			t.Errorf("Expected 7d change 200, got %v", metrics.Change7d)
		}
		if metrics.Change7dPercent != 20 {
			t.Errorf("Expected 7d percent 20, got %v", metrics.Change7dPercent)
		}
	})

	t.Run("change30d falls back to the oldest entry", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-10", 500),
			daily("2024-01-20", 900),
			daily("2024-01-25", 1000),
		})

		// Nothing exists at or before 2023-12-26, so the oldest entry wins.
		if metrics.Change30d != 500 {
			t.Errorf("Expected 30d change 500, got %v", metrics.Change30d)
		}
		if metrics.Change30dPercent != 100 {
			t.Errorf("Expected 30d percent 100, got %v", metrics.Change30dPercent)
		}
	})

	t.Run("ath survives a later drawdown", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-01", 1000),
			daily("2024-01-02", 1500),
			daily("2024-01-03", 800),
		})

		if metrics.Ath != 1500 {
			t.Errorf("Expected ath 1500, got %v", metrics.Ath)
		}
		if metrics.AthDate != "2024-01-02" {
			t.Errorf("Expected ath date 2024-01-02, got %q", metrics.AthDate)
		}
	})

	t.Run("ath ties keep the first occurrence", func(t *testing.T) {
		metrics := PerformanceMetrics([]model.DailySnapshot{
			daily("2024-01-01", 1500),
			daily("2024-01-02", 1500),
		})

		if metrics.AthDate != "2024-01-01" {
			t.Errorf("Expected ath date 2024-01-01, got %q", metrics.AthDate)
		}
	})
}

func TestWalletAllocations(t *testing.T) {
	wallets := []model.Wallet{
		{ID: "w1", Name: "Cold", Color: "#3b82f6"},
		{ID: "w2", Name: "Exchange", Color: "#f59e0b"},
	}

	t.Run("percentages are relative to the total", func(t *testing.T) {
		snapshot := model.DailySnapshot{
			TotalUsd: 1000,
			WalletBalances: []model.WalletBalance{
				{WalletID: "w1", ValueUsd: 750},
				{WalletID: "w2", ValueUsd: 250},
			},
		}

		allocations := WalletAllocations(snapshot, wallets)
		if len(allocations) != 2 {
			t.Fatalf("Expected 2 allocations, got %d", len(allocations))
		}
		if allocations[0].Percentage != 75 {
			t.Errorf("Expected 75%%, got %v", allocations[0].Percentage)
		}
		if allocations[1].Percentage != 25 {
			t.Errorf("Expected 25%%, got %v", allocations[1].Percentage)
		}
		if allocations[0].Name != "Cold" {
			t.Errorf("Expected wallet name Cold, got %q", allocations[0].Name)
		}
	})

	t.Run("non-positive balances are excluded", func(t *testing.T) {
		snapshot := model.DailySnapshot{
			TotalUsd: 500,
			WalletBalances: []model.WalletBalance{
				{WalletID: "w1", ValueUsd: 500},
				{WalletID: "w2", ValueUsd: 0},
			},
		}

		allocations := WalletAllocations(snapshot, wallets)
		if len(allocations) != 1 {
			t.Fatalf("Expected 1 allocation, got %d", len(allocations))
		}
		if allocations[0].WalletID != "w1" {
			t.Errorf("Expected w1, got %q", allocations[0].WalletID)
		}
	})

	t.Run("zero total yields empty list", func(t *testing.T) {
		snapshot := model.DailySnapshot{TotalUsd: 0}

		allocations := WalletAllocations(snapshot, wallets)
		if len(allocations) != 0 {
			t.Errorf("Expected no allocations, got %d", len(allocations))
		}
	})

	t.Run("deleted wallet keeps its value under a sentinel", func(t *testing.T) {
		snapshot := model.DailySnapshot{
			TotalUsd: 100,
			WalletBalances: []model.WalletBalance{
				{WalletID: "gone", ValueUsd: 100},
			},
		}

		allocations := WalletAllocations(snapshot, wallets)
		if len(allocations) != 1 {
			t.Fatalf("Expected 1 allocation, got %d", len(allocations))
		}
		if allocations[0].Name != UnknownWalletName {
			t.Errorf("Expected sentinel name, got %q", allocations[0].Name)
		}
		if allocations[0].Color != UnknownWalletColor {
			t.Errorf("Expected sentinel color, got %q", allocations[0].Color)
		}
	})
}

func TestMonthlySeries(t *testing.T) {
	t.Run("always yields twelve buckets", func(t *testing.T) {
		points := MonthlySeries(nil, 2024)
		if len(points) != 12 {
			t.Fatalf("Expected 12 points, got %d", len(points))
		}
		if points[0].Month != "2024-01" || points[11].Month != "2024-12" {
			t.Errorf("Unexpected month labels: %q .. %q", points[0].Month, points[11].Month)
		}
		for _, p := range points {
			if p.HasData {
				t.Errorf("Expected no data for %s", p.Month)
			}
		}
	})

	t.Run("recorded months carry their values", func(t *testing.T) {
		monthly := []model.MonthlySnapshot{
			{Month: "2024-03", Year: 2024, TotalUsd: 5000, DeltaUsd: 500, DeltaPercent: 11.1},
		}

		points := MonthlySeries(monthly, 2024)
		march := points[2]
		if !march.HasData {
			t.Fatal("Expected data for 2024-03")
		}
		if *march.TotalUsd != 5000 {
			t.Errorf("Expected total 5000, got %v", *march.TotalUsd)
		}
		if *march.DeltaUsd != 500 {
			t.Errorf("Expected delta 500, got %v", *march.DeltaUsd)
		}
	})

	t.Run("recorded zero total still counts as data", func(t *testing.T) {
		monthly := []model.MonthlySnapshot{
			{Month: "2024-06", Year: 2024, TotalUsd: 0},
		}

		points := MonthlySeries(monthly, 2024)
		june := points[5]
		if !june.HasData {
			t.Fatal("Expected data for 2024-06")
		}
		if *june.TotalUsd != 0 {
			t.Errorf("Expected total 0, got %v", *june.TotalUsd)
		}
	})

	t.Run("other years are filtered out", func(t *testing.T) {
		monthly := []model.MonthlySnapshot{
			{Month: "2023-03", Year: 2023, TotalUsd: 1000},
		}

		points := MonthlySeries(monthly, 2024)
		if points[2].HasData {
			t.Error("Expected no data for 2024-03")
		}
	})
}

func TestChartData(t *testing.T) {
	series := []model.DailySnapshot{
		daily("2024-01-03", 1200),
		daily("2024-01-01", 1000),
		daily("2024-01-02", 1100),
	}

	t.Run("sorts ascending by date", func(t *testing.T) {
		points := ChartData(series, 0)
		if len(points) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(points))
		}
		if points[0].Date != "2024-01-01" || points[2].Date != "2024-01-03" {
			t.Errorf("Unexpected order: %q .. %q", points[0].Date, points[2].Date)
		}
	})

	t.Run("limit keeps the most recent points", func(t *testing.T) {
		points := ChartData(series, 2)
		if len(points) != 2 {
			t.Fatalf("Expected 2 points, got %d", len(points))
		}
		if points[0].Date != "2024-01-02" {
			t.Errorf("Expected oldest kept point 2024-01-02, got %q", points[0].Date)
		}
	})

	t.Run("sparkline keeps at most seven points", func(t *testing.T) {
		long := []model.DailySnapshot{
			daily("2024-01-01", 1), daily("2024-01-02", 2), daily("2024-01-03", 3),
			daily("2024-01-04", 4), daily("2024-01-05", 5), daily("2024-01-06", 6),
			daily("2024-01-07", 7), daily("2024-01-08", 8), daily("2024-01-09", 9),
		}

		points := SparklineData(long)
		if len(points) != 7 {
			t.Fatalf("Expected 7 points, got %d", len(points))
		}
		if points[0].Date != "2024-01-03" {
			t.Errorf("Expected window to start at 2024-01-03, got %q", points[0].Date)
		}
	})
}
