package request

// CreateMarketEventRequest represents the request body for creating a
// market event
type CreateMarketEventRequest struct {
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Impact      string   `json:"impact"`
	Coins       []string `json:"coins,omitempty"`
	Source      string   `json:"source,omitempty"`
}

type UpdateMarketEventRequest struct {
	Date        *string   `json:"date,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Impact      *string   `json:"impact,omitempty"`
	Coins       *[]string `json:"coins,omitempty"`
	Source      *string   `json:"source,omitempty"`
}
