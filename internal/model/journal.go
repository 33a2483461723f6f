package model

// Journal entry moods.
const (
	MoodBullish = "bullish"
	MoodBearish = "bearish"
	MoodNeutral = "neutral"
)

// ValidMood reports whether mood is one of the accepted journal moods.
func ValidMood(mood string) bool {
	switch mood {
	case MoodBullish, MoodBearish, MoodNeutral:
		return true
	}
	return false
}

// JournalEntry is a dated note attached to a portfolio.
// UpdatedAt is set on every mutation after creation.
type JournalEntry struct {
	ID          string   `json:"id"`
	PortfolioID string   `json:"portfolioId"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`           // RFC3339
	UpdatedAt   string   `json:"updatedAt,omitempty"` // RFC3339
}

// JournalEntryPatch carries optional field updates for a journal entry.
type JournalEntryPatch struct {
	Date    *string   `json:"date"`
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Mood    *string   `json:"mood"`
	Tags    *[]string `json:"tags"`
}
