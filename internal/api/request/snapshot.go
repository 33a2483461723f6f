package request

// WalletBalanceRequest is one wallet's value inside a daily snapshot body.
type WalletBalanceRequest struct {
	WalletID string  `json:"walletId"`
	ValueUsd float64 `json:"valueUsd"`
}

// UpsertDailySnapshotRequest represents the request body for creating or
// replacing the daily snapshot of a given date.
type UpsertDailySnapshotRequest struct {
	PortfolioID    string                 `json:"portfolioId"`
	Date           string                 `json:"date"`
	WalletBalances []WalletBalanceRequest `json:"walletBalances"`
}

type UpdateDailySnapshotRequest struct {
	Date           *string                 `json:"date,omitempty"`
	WalletBalances *[]WalletBalanceRequest `json:"walletBalances,omitempty"`
}

// UpsertMonthlySnapshotRequest represents the request body for creating or
// replacing the monthly snapshot of a given month.
type UpsertMonthlySnapshotRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Month       string  `json:"month"`
	TotalUsd    float64 `json:"totalUsd"`
	BtcPrice    float64 `json:"btcPrice,omitempty"`
	EthPrice    float64 `json:"ethPrice,omitempty"`
}

type UpdateMonthlySnapshotRequest struct {
	Month    *string  `json:"month,omitempty"`
	TotalUsd *float64 `json:"totalUsd,omitempty"`
	BtcPrice *float64 `json:"btcPrice,omitempty"`
	EthPrice *float64 `json:"ethPrice,omitempty"`
}
