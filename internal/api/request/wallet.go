package request

// CreateWalletRequest represents the request body for creating a wallet
type CreateWalletRequest struct {
	PortfolioID string `json:"portfolioId"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Chain       string `json:"chain,omitempty"`
	Color       string `json:"color"`
}

type UpdateWalletRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Chain   *string `json:"chain,omitempty"`
	Color   *string `json:"color,omitempty"`
}
