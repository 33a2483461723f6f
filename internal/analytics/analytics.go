// Package analytics derives performance metrics, allocation breakdowns and
// chart series from snapshot data that has already been loaded from a store.
// Every function is pure and total: absence of data is expressed as zero or
// empty results, never as an error, so the caller can always render something.
package analytics

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// Sentinel values used when a wallet referenced by a snapshot balance no
// longer exists. Snapshots never cascade-delete their embedded balances.
const (
	UnknownWalletName  = "Unknown"
	UnknownWalletColor = "#6b7280"
)

// Default window for sparkline series.
const sparklineLimit = 7

// Variation computes the absolute and percentual change from previous to
// current. When previous is zero the percentage cannot be derived, so by
// policy it is 100 for any growth and 0 otherwise. The result is never
// NaN or infinite.
func Variation(current, previous float64) (amount, percent float64) {
	amount = current - previous
	if previous == 0 {
		if current > 0 {
			return amount, 100
		}
		return amount, 0
	}
	return amount, (current - previous) / previous * 100
}

// PerformanceMetrics computes the point-in-time metrics for a daily snapshot
// series. The input may be in any order; it is sorted by date internally.
//
//   - TotalUsd is the total of the snapshot with the latest date.
//   - Change24h compares against the entry immediately before the latest in
//     date order, regardless of the actual gap between the two dates.
//   - Change7d and Change30d compare against the snapshot closest to (at or
//     before) latest-7 respectively latest-30 days, excluding the latest
//     snapshot itself, falling back to the oldest entry in the series.
//   - Ath is the maximum total over the entire series; ties keep the first
//     occurrence in input order.
func PerformanceMetrics(daily []model.DailySnapshot) model.PerformanceMetrics {
	if len(daily) == 0 {
		return model.PerformanceMetrics{}
	}

	sorted := sortedByDate(daily)
	latest := sorted[len(sorted)-1]

	metrics := model.PerformanceMetrics{TotalUsd: latest.TotalUsd}

	metrics.Ath, metrics.AthDate = allTimeHigh(daily)

	if len(sorted) > 1 {
		previous := sorted[len(sorted)-2]
		metrics.Change24h, metrics.Change24hPercent = Variation(latest.TotalUsd, previous.TotalUsd)

		week := snapshotAtOrBefore(sorted[:len(sorted)-1], boundaryDate(latest.Date, 7))
		metrics.Change7d, metrics.Change7dPercent = Variation(latest.TotalUsd, week.TotalUsd)

		month := snapshotAtOrBefore(sorted[:len(sorted)-1], boundaryDate(latest.Date, 30))
		metrics.Change30d, metrics.Change30dPercent = Variation(latest.TotalUsd, month.TotalUsd)
	}

	return metrics
}

// allTimeHigh scans the series in input order so that ties are broken by
// first occurrence.
func allTimeHigh(daily []model.DailySnapshot) (ath float64, athDate string) {
	for _, s := range daily {
		if s.TotalUsd > ath || athDate == "" {
			ath = s.TotalUsd
			athDate = s.Date
		}
	}
	return ath, athDate
}

// snapshotAtOrBefore returns the entry with the greatest date not after
// boundary, or the oldest entry when none qualifies. Candidates must be
// sorted ascending and must already exclude the latest snapshot.
func snapshotAtOrBefore(candidates []model.DailySnapshot, boundary string) model.DailySnapshot {
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Date <= boundary {
			return candidates[i]
		}
	}
	return candidates[0]
}

// boundaryDate subtracts days from an ISO date. An unparseable date is
// returned unchanged; lexicographic comparison then degrades gracefully.
func boundaryDate(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -days).Format("2006-01-02")
}

// WalletAllocations breaks a snapshot down into the percentage each wallet
// contributes to the total. Balances with value <= 0 are excluded rather
// than rendered as zero-width slices, and a snapshot with a zero total
// yields an empty list. Balances pointing at a deleted wallet keep their
// value under a sentinel name and neutral color.
func WalletAllocations(snapshot model.DailySnapshot, wallets []model.Wallet) []model.WalletAllocation {
	if snapshot.TotalUsd == 0 {
		return []model.WalletAllocation{}
	}

	byID := make(map[string]model.Wallet, len(wallets))
	for _, w := range wallets {
		byID[w.ID] = w
	}

	allocations := []model.WalletAllocation{}
	for _, balance := range snapshot.WalletBalances {
		if balance.ValueUsd <= 0 {
			continue
		}

		name, color := UnknownWalletName, UnknownWalletColor
		if w, ok := byID[balance.WalletID]; ok {
			name, color = w.Name, w.Color
		}

		allocations = append(allocations, model.WalletAllocation{
			WalletID:   balance.WalletID,
			Name:       name,
			Color:      color,
			ValueUsd:   balance.ValueUsd,
			Percentage: balance.ValueUsd / snapshot.TotalUsd * 100,
		})
	}

	return allocations
}

// MonthlySeries produces exactly twelve buckets (January through December)
// for the given year. Months without a recorded monthly snapshot have
// HasData false and nil totals; a recorded zero total is a real value and
// keeps HasData true.
func MonthlySeries(monthly []model.MonthlySnapshot, year int) []model.MonthlyPoint {
	byMonth := make(map[string]model.MonthlySnapshot, len(monthly))
	for _, s := range monthly {
		byMonth[s.Month] = s
	}

	points := make([]model.MonthlyPoint, 12)
	for i := range points {
		month := fmt.Sprintf("%04d-%02d", year, i+1)
		points[i] = model.MonthlyPoint{Month: month}

		if s, ok := byMonth[month]; ok {
			points[i].HasData = true
			points[i].TotalUsd = &s.TotalUsd
			points[i].DeltaUsd = &s.DeltaUsd
			points[i].DeltaPercent = &s.DeltaPercent
			points[i].BtcPrice = &s.BtcPrice
			points[i].EthPrice = &s.EthPrice
		}
	}

	return points
}

// ChartData sorts the series ascending by date and returns the last limit
// points. A non-positive limit returns the whole series. The input slice is
// not mutated.
func ChartData(daily []model.DailySnapshot, limit int) []model.ChartPoint {
	sorted := sortedByDate(daily)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	points := make([]model.ChartPoint, len(sorted))
	for i, s := range sorted {
		points[i] = model.ChartPoint{Date: s.Date, TotalUsd: s.TotalUsd}
	}
	return points
}

// SparklineData is ChartData with a small default window.
func SparklineData(daily []model.DailySnapshot) []model.ChartPoint {
	return ChartData(daily, sparklineLimit)
}

// sortedByDate returns a date-ascending copy of the series. The sort is
// stable so same-date entries keep their input order.
func sortedByDate(daily []model.DailySnapshot) []model.DailySnapshot {
	sorted := slices.Clone(daily)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
