package validation

import (
	"strings"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
)

func ValidateCreateWallet(req request.CreateWalletRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	validateHexColor(errors, "color", req.Color)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateWallet(req request.UpdateWalletRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Color != nil {
		validateHexColor(errors, "color", *req.Color)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
