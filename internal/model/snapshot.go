package model

// WalletBalance is the valuation of a single wallet inside a daily snapshot.
// It is not independently addressable; it only exists embedded in a snapshot,
// and it survives deletion of the wallet it points at.
type WalletBalance struct {
	WalletID string  `json:"walletId"`
	ValueUsd float64 `json:"valueUsd"`
}

// DailySnapshot is one valuation of a portfolio for one calendar day.
// At most one snapshot exists per (portfolioId, date); writing a second one
// for the same date replaces the row contents but keeps its id.
//
// Dates are stored as YYYY-MM-DD strings, which sort lexicographically in
// chronological order.
type DailySnapshot struct {
	ID               string          `json:"id"`
	PortfolioID      string          `json:"portfolioId"`
	Date             string          `json:"date"` // YYYY-MM-DD
	WalletBalances   []WalletBalance `json:"walletBalances"`
	TotalUsd         float64         `json:"totalUsd"`
	VariationUsd     float64         `json:"variationUsd"`
	VariationPercent float64         `json:"variationPercent"`
}

// DailySnapshotPatch carries optional field updates for a daily snapshot.
// Changing Date to a value already taken by another snapshot of the same
// portfolio is a conflict, not an upsert.
type DailySnapshotPatch struct {
	Date             *string          `json:"date"`
	WalletBalances   *[]WalletBalance `json:"walletBalances"`
	TotalUsd         *float64         `json:"totalUsd"`
	VariationUsd     *float64         `json:"variationUsd"`
	VariationPercent *float64         `json:"variationPercent"`
}

// MonthlySnapshot is a manually curated month-end valuation. It is a separate
// series, not an aggregation derived from daily snapshots. At most one exists
// per (portfolioId, month).
type MonthlySnapshot struct {
	ID           string  `json:"id"`
	PortfolioID  string  `json:"portfolioId"`
	Month        string  `json:"month"` // YYYY-MM
	Year         int     `json:"year"`
	TotalUsd     float64 `json:"totalUsd"`
	DeltaUsd     float64 `json:"deltaUsd"`
	DeltaPercent float64 `json:"deltaPercent"`
	BtcPrice     float64 `json:"btcPrice"`
	EthPrice     float64 `json:"ethPrice"`
}

// MonthlySnapshotPatch carries optional field updates for a monthly snapshot.
type MonthlySnapshotPatch struct {
	Month        *string  `json:"month"`
	Year         *int     `json:"year"`
	TotalUsd     *float64 `json:"totalUsd"`
	DeltaUsd     *float64 `json:"deltaUsd"`
	DeltaPercent *float64 `json:"deltaPercent"`
	BtcPrice     *float64 `json:"btcPrice"`
	EthPrice     *float64 `json:"ethPrice"`
}
