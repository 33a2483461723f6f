package model

// Goal is a target portfolio value the user is working towards.
// CompletedAt is set exactly once by an explicit completion action and is
// never cleared when the portfolio value later drops below the target.
type Goal struct {
	ID          string  `json:"id"`
	PortfolioID string  `json:"portfolioId"`
	Name        string  `json:"name"`
	TargetValue float64 `json:"targetValue"`
	Deadline    string  `json:"deadline,omitempty"` // YYYY-MM-DD
	Color       string  `json:"color"`
	Icon        string  `json:"icon,omitempty"`
	CreatedAt   string  `json:"createdAt"`             // RFC3339
	CompletedAt string  `json:"completedAt,omitempty"` // RFC3339
}

// GoalPatch carries optional field updates for a goal.
// Completion is a separate explicit action, not a patch field.
type GoalPatch struct {
	Name        *string  `json:"name"`
	TargetValue *float64 `json:"targetValue"`
	Deadline    *string  `json:"deadline"`
	Color       *string  `json:"color"`
	Icon        *string  `json:"icon"`
}
