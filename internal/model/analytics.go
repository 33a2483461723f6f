package model

// PerformanceMetrics is the point-in-time view of a daily snapshot series.
// All values are derived; an empty series yields the zero value with an
// empty AthDate.
type PerformanceMetrics struct {
	TotalUsd         float64 `json:"totalUsd"`         // Latest snapshot total
	Change24h        float64 `json:"change24h"`        // Versus the prior snapshot in the series
	Change24hPercent float64 `json:"change24hPercent"` //
	Change7d         float64 `json:"change7d"`         // Versus the snapshot at or before latest-7d
	Change7dPercent  float64 `json:"change7dPercent"`  //
	Change30d        float64 `json:"change30d"`        // Versus the snapshot at or before latest-30d
	Change30dPercent float64 `json:"change30dPercent"` //
	Ath              float64 `json:"ath"`              // Highest total over the whole series
	AthDate          string  `json:"athDate"`          // Date of the all-time high, YYYY-MM-DD
}

// WalletAllocation is one wallet's share of a snapshot total.
// Name and Color fall back to a sentinel when the wallet no longer exists.
type WalletAllocation struct {
	WalletID   string  `json:"walletId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	ValueUsd   float64 `json:"valueUsd"`
	Percentage float64 `json:"percentage"`
}

// MonthlyPoint is one bucket of a twelve-month series. A month with no
// recorded monthly snapshot has HasData false and nil totals, which is
// distinct from a recorded zero value.
type MonthlyPoint struct {
	Month        string   `json:"month"` // YYYY-MM
	HasData      bool     `json:"hasData"`
	TotalUsd     *float64 `json:"totalUsd"`
	DeltaUsd     *float64 `json:"deltaUsd"`
	DeltaPercent *float64 `json:"deltaPercent"`
	BtcPrice     *float64 `json:"btcPrice"`
	EthPrice     *float64 `json:"ethPrice"`
}

// ChartPoint is a chart-ready (date, value) pair taken from the sorted
// daily snapshot series.
type ChartPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	TotalUsd float64 `json:"totalUsd"`
}
