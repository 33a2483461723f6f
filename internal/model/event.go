package model

// Market event types.
const (
	EventNews       = "news"
	EventHalving    = "halving"
	EventCrash      = "crash"
	EventAth        = "ath"
	EventRegulation = "regulation"
	EventHack       = "hack"
	EventLaunch     = "launch"
	EventOther      = "other"
)

// Market event impact classifications.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// ValidEventType reports whether t is an accepted market event type.
func ValidEventType(t string) bool {
	switch t {
	case EventNews, EventHalving, EventCrash, EventAth,
		EventRegulation, EventHack, EventLaunch, EventOther:
		return true
	}
	return false
}

// ValidImpact reports whether impact is an accepted impact classification.
func ValidImpact(impact string) bool {
	switch impact {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
		return true
	}
	return false
}

// MarketEvent is a dated market-wide occurrence. It is scoped to the tenant,
// not to any portfolio.
type MarketEvent struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Impact      string   `json:"impact"`
	Coins       []string `json:"coins,omitempty"`
	Source      string   `json:"source,omitempty"`
	CreatedAt   string   `json:"createdAt"` // RFC3339
}

// MarketEventPatch carries optional field updates for a market event.
type MarketEventPatch struct {
	Date        *string   `json:"date"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Type        *string   `json:"type"`
	Impact      *string   `json:"impact"`
	Coins       *[]string `json:"coins"`
	Source      *string   `json:"source"`
}
