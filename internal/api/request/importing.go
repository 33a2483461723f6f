package request

// ImportRowsRequest represents the request body for a tabular snapshot
// import. Data carries the raw document; Format selects the parser.
type ImportRowsRequest struct {
	PortfolioID string `json:"portfolioId"`
	Format      string `json:"format"` // "csv" or "json"
	Data        string `json:"data"`
}
