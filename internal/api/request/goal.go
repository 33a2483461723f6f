package request

// CreateGoalRequest represents the request body for creating a goal
type CreateGoalRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Name        string  `json:"name"`
	TargetValue float64 `json:"targetValue"`
	Deadline    string  `json:"deadline,omitempty"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon,omitempty"`
}

type UpdateGoalRequest struct {
	Name        *string  `json:"name,omitempty"`
	TargetValue *float64 `json:"targetValue,omitempty"`
	Deadline    *string  `json:"deadline,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
}
