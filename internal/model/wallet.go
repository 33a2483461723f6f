package model

// Wallet represents a named holding location (exchange account, cold wallet,
// on-chain address) inside a portfolio. Address and chain are free-form
// metadata; no validation is applied beyond presence.
type Wallet struct {
	ID          string `json:"id"`
	PortfolioID string `json:"portfolioId"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Chain       string `json:"chain,omitempty"`
	Color       string `json:"color"`
}

// WalletPatch carries optional field updates for a wallet.
type WalletPatch struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Chain   *string `json:"chain"`
	Color   *string `json:"color"`
}
