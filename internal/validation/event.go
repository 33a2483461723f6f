package validation

import (
	"fmt"
	"strings"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func ValidateCreateMarketEvent(req request.CreateMarketEventRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	} else if len(req.Title) > 255 {
		errors["title"] = "title must be 255 characters or less"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidEventType(req.Type) {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Impact) == "" {
		errors["impact"] = "impact is required"
	} else if !model.ValidImpact(req.Impact) {
		errors["impact"] = fmt.Sprintf("invalid impact: %s", req.Impact)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateMarketEvent(req request.UpdateMarketEventRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, "date", *req.Date)
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errors["title"] = "title cannot be empty"
		} else if len(*req.Title) > 255 {
			errors["title"] = "title must be 255 characters or less"
		}
	}

	if req.Type != nil && !model.ValidEventType(*req.Type) {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}

	if req.Impact != nil && !model.ValidImpact(*req.Impact) {
		errors["impact"] = fmt.Sprintf("invalid impact: %s", *req.Impact)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
