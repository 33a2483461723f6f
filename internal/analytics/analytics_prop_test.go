package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// genTotals generates a non-empty series of snapshot totals.
func genTotals() gopter.Gen {
	return gen.SliceOfN(20, gen.Float64Range(0, 1e9))
}

func seriesFromTotals(totals []float64) []model.DailySnapshot {
	series := make([]model.DailySnapshot, len(totals))
	for i, total := range totals {
		series[i] = model.DailySnapshot{
			Date:     fmt.Sprintf("2024-01-%02d", i%28+1),
			TotalUsd: total,
		}
	}
	return series
}

func TestVariationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("variation is never NaN or infinite", prop.ForAll(
		func(current, previous float64) bool {
			amount, percent := Variation(current, previous)
			return !math.IsNaN(amount) && !math.IsInf(amount, 0) &&
				!math.IsNaN(percent) && !math.IsInf(percent, 0)
		},
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e12),
	))

	properties.Property("amount is the plain difference", prop.ForAll(
		func(current, previous float64) bool {
			amount, _ := Variation(current, previous)
			return amount == current-previous
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

func TestPerformanceMetricsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ath is the maximum total of the series", prop.ForAll(
		func(totals []float64) bool {
			series := seriesFromTotals(totals)
			metrics := PerformanceMetrics(series)

			max := 0.0
			for _, total := range totals {
				if total > max {
					max = total
				}
			}
			return metrics.Ath == max
		},
		genTotals(),
	))

	properties.Property("metrics are always finite", prop.ForAll(
		func(totals []float64) bool {
			metrics := PerformanceMetrics(seriesFromTotals(totals))
			for _, v := range []float64{
				metrics.TotalUsd,
				metrics.Change24h, metrics.Change24hPercent,
				metrics.Change7d, metrics.Change7dPercent,
				metrics.Change30d, metrics.Change30dPercent,
				metrics.Ath,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
			return true
		},
		genTotals(),
	))

	properties.TestingRun(t)
}

func TestWalletAllocationsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("positive balances sum to one hundred percent", prop.ForAll(
		func(values []float64) bool {
			balances := make([]model.WalletBalance, len(values))
			total := 0.0
			for i, v := range values {
				balances[i] = model.WalletBalance{WalletID: fmt.Sprintf("w%d", i), ValueUsd: v}
				total += v
			}
			if total == 0 {
				return true
			}

			snapshot := model.DailySnapshot{TotalUsd: total, WalletBalances: balances}
			sum := 0.0
			for _, a := range WalletAllocations(snapshot, nil) {
				sum += a.Percentage
			}
			return math.Abs(sum-100) < 1e-6
		},
		gen.SliceOfN(8, gen.Float64Range(0.01, 1e6)),
	))

	properties.TestingRun(t)
}
