package request

// CreateJournalEntryRequest represents the request body for creating a
// journal entry
type CreateJournalEntryRequest struct {
	PortfolioID string   `json:"portfolioId"`
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateJournalEntryRequest struct {
	Date    *string   `json:"date,omitempty"`
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Mood    *string   `json:"mood,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}
