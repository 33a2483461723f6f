package validation

import (
	"strings"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
)

func ValidateCreateGoal(req request.CreateGoalRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if req.TargetValue <= 0 {
		errors["targetValue"] = "targetValue must be positive"
	}

	if req.Deadline != "" {
		validateDate(errors, "deadline", req.Deadline)
	}

	validateHexColor(errors, "color", req.Color)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateGoal(req request.UpdateGoalRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.TargetValue != nil && *req.TargetValue <= 0 {
		errors["targetValue"] = "targetValue must be positive"
	}

	if req.Deadline != nil && *req.Deadline != "" {
		validateDate(errors, "deadline", *req.Deadline)
	}

	if req.Color != nil {
		validateHexColor(errors, "color", *req.Color)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
