package validation

import (
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
)

// ValidateUpsertDailySnapshot validates a daily snapshot upsert request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - walletBalances: At least one entry, each with a valid wallet UUID
func ValidateUpsertDailySnapshot(req request.UpsertDailySnapshotRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if len(req.WalletBalances) == 0 {
		errors["walletBalances"] = "at least one wallet balance is required"
	}
	for _, b := range req.WalletBalances {
		if err := ValidateUUID(b.WalletID); err != nil {
			errors["walletBalances"] = "walletId must be a valid UUID"
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateDailySnapshot(req request.UpdateDailySnapshotRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, "date", *req.Date)
	}
	if req.WalletBalances != nil {
		if len(*req.WalletBalances) == 0 {
			errors["walletBalances"] = "at least one wallet balance is required"
		}
		for _, b := range *req.WalletBalances {
			if err := ValidateUUID(b.WalletID); err != nil {
				errors["walletBalances"] = "walletId must be a valid UUID"
				break
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpsertMonthlySnapshot validates a monthly snapshot upsert request.
func ValidateUpsertMonthlySnapshot(req request.UpsertMonthlySnapshotRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	validateMonth(errors, "month", req.Month)

	if req.TotalUsd < 0 {
		errors["totalUsd"] = "totalUsd cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateMonthlySnapshot(req request.UpdateMonthlySnapshotRequest) error {
	errors := make(map[string]string)

	if req.Month != nil {
		validateMonth(errors, "month", *req.Month)
	}
	if req.TotalUsd != nil && *req.TotalUsd < 0 {
		errors["totalUsd"] = "totalUsd cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
