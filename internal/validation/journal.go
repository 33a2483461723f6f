package validation

import (
	"fmt"
	"strings"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func ValidateCreateJournalEntry(req request.CreateJournalEntryRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	} else if len(req.Title) > 255 {
		errors["title"] = "title must be 255 characters or less"
	}

	if strings.TrimSpace(req.Content) == "" {
		errors["content"] = "content is required"
	}

	if strings.TrimSpace(req.Mood) == "" {
		errors["mood"] = "mood is required"
	} else if !model.ValidMood(req.Mood) {
		errors["mood"] = fmt.Sprintf("invalid mood: %s", req.Mood)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateJournalEntry(req request.UpdateJournalEntryRequest) error {
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

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		errors["content"] = "content cannot be empty"
	}

	if req.Mood != nil && !model.ValidMood(*req.Mood) {
		errors["mood"] = fmt.Sprintf("invalid mood: %s", *req.Mood)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
