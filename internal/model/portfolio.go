package model

// Portfolio is the aggregate root for a user's holdings. Wallets, snapshots,
// goals and journal entries all hang off a portfolio and are removed with it.
type Portfolio struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"` // RFC3339
}

// PortfolioPatch carries optional field updates for a portfolio.
// Nil fields are left untouched.
type PortfolioPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
