package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/analytics"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// SnapshotService handles daily and monthly snapshot business logic. It
// computes totals and variations at write time; the store persists them
// verbatim and never re-derives.
type SnapshotService struct {
	snapshots store.SnapshotStore
	entities  store.EntityStore
}

// NewSnapshotService creates a new SnapshotService over the given stores.
func NewSnapshotService(snapshots store.SnapshotStore, entities store.EntityStore) *SnapshotService {
	return &SnapshotService{snapshots: snapshots, entities: entities}
}

// GetDailySnapshots retrieves the daily series of a portfolio, ascending
// by date.
func (s *SnapshotService) GetDailySnapshots(ctx context.Context, portfolioID string) ([]model.DailySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshots.ListDaily(ctx, tenantID, portfolioID)
}

// GetDailySnapshot retrieves a single daily snapshot by id.
func (s *SnapshotService) GetDailySnapshot(ctx context.Context, id string) (model.DailySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	return s.snapshots.GetDaily(ctx, tenantID, id)
}

// UpsertDailySnapshot writes the snapshot for one calendar day. A snapshot
// already recorded for that date is replaced in place and keeps its id.
//
// The total is the sum of the submitted wallet balances, and the variation
// is computed against the most recent snapshot with an earlier date,
// regardless of the creation order of the rows.
func (s *SnapshotService) UpsertDailySnapshot(ctx context.Context, req request.UpsertDailySnapshotRequest) (model.DailySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	if _, err := s.entities.GetPortfolio(ctx, tenantID, req.PortfolioID); err != nil {
		return model.DailySnapshot{}, err
	}

	balances := make([]model.WalletBalance, len(req.WalletBalances))
	total := 0.0
	for i, b := range req.WalletBalances {
		balances[i] = model.WalletBalance{WalletID: b.WalletID, ValueUsd: b.ValueUsd}
		total += b.ValueUsd
	}

	existing, err := s.snapshots.ListDaily(ctx, tenantID, req.PortfolioID)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	snap := model.DailySnapshot{
		ID:             uuid.NewString(),
		PortfolioID:    req.PortfolioID,
		Date:           req.Date,
		WalletBalances: balances,
		TotalUsd:       total,
	}

	previousTotal := 0.0
	if prev, ok := previousDaily(existing, req.Date); ok {
		previousTotal = prev.TotalUsd
	}
	snap.VariationUsd, snap.VariationPercent = analytics.Variation(total, previousTotal)

	effectiveID, err := s.snapshots.UpsertDaily(ctx, tenantID, snap)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	snap.ID = effectiveID
	return snap, nil
}

// UpdateDailySnapshot patches a daily snapshot in place, recomputing the
// total when the balances change. Moving the snapshot onto an occupied
// date is a conflict.
func (s *SnapshotService) UpdateDailySnapshot(ctx context.Context, id string, req request.UpdateDailySnapshotRequest) (model.DailySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.DailySnapshot{}, err
	}

	patch := model.DailySnapshotPatch{Date: req.Date}
	if req.WalletBalances != nil {
		balances := make([]model.WalletBalance, len(*req.WalletBalances))
		total := 0.0
		for i, b := range *req.WalletBalances {
			balances[i] = model.WalletBalance{WalletID: b.WalletID, ValueUsd: b.ValueUsd}
			total += b.ValueUsd
		}
		patch.WalletBalances = &balances
		patch.TotalUsd = &total
	}

	if err := s.snapshots.UpdateDaily(ctx, tenantID, id, patch); err != nil {
		return model.DailySnapshot{}, err
	}
	return s.snapshots.GetDaily(ctx, tenantID, id)
}

// DeleteDailySnapshot removes one daily snapshot. Deleting an unknown id
// is a no-op.
func (s *SnapshotService) DeleteDailySnapshot(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.snapshots.DeleteDaily(ctx, tenantID, id)
}

// GetMonthlySnapshots retrieves the monthly series of a portfolio,
// ascending by month.
func (s *SnapshotService) GetMonthlySnapshots(ctx context.Context, portfolioID string) ([]model.MonthlySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshots.ListMonthly(ctx, tenantID, portfolioID)
}

// GetMonthlySnapshot retrieves a single monthly snapshot by id.
func (s *SnapshotService) GetMonthlySnapshot(ctx context.Context, id string) (model.MonthlySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MonthlySnapshot{}, err
	}
	return s.snapshots.GetMonthly(ctx, tenantID, id)
}

// UpsertMonthlySnapshot writes the snapshot for one month. The delta is
// computed against the snapshot of the calendar-preceding month, which may
// legitimately be absent; a first-ever month reports its full total as
// growth.
func (s *SnapshotService) UpsertMonthlySnapshot(ctx context.Context, req request.UpsertMonthlySnapshotRequest) (model.MonthlySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MonthlySnapshot{}, err
	}

	if _, err := s.entities.GetPortfolio(ctx, tenantID, req.PortfolioID); err != nil {
		return model.MonthlySnapshot{}, err
	}

	existing, err := s.snapshots.ListMonthly(ctx, tenantID, req.PortfolioID)
	if err != nil {
		return model.MonthlySnapshot{}, err
	}

	snap := model.MonthlySnapshot{
		ID:          uuid.NewString(),
		PortfolioID: req.PortfolioID,
		Month:       req.Month,
		Year:        yearOfMonth(req.Month),
		TotalUsd:    req.TotalUsd,
		BtcPrice:    req.BtcPrice,
		EthPrice:    req.EthPrice,
	}

	previousTotal := 0.0
	if prev, ok := snapshotForMonth(existing, precedingMonth(req.Month)); ok {
		previousTotal = prev.TotalUsd
	}
	snap.DeltaUsd, snap.DeltaPercent = analytics.Variation(req.TotalUsd, previousTotal)

	effectiveID, err := s.snapshots.UpsertMonthly(ctx, tenantID, snap)
	if err != nil {
		return model.MonthlySnapshot{}, err
	}
	snap.ID = effectiveID
	return snap, nil
}

// UpdateMonthlySnapshot patches a monthly snapshot in place. Moving the
// snapshot onto an occupied month is a conflict.
func (s *SnapshotService) UpdateMonthlySnapshot(ctx context.Context, id string, req request.UpdateMonthlySnapshotRequest) (model.MonthlySnapshot, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MonthlySnapshot{}, err
	}

	patch := model.MonthlySnapshotPatch{
		Month:    req.Month,
		TotalUsd: req.TotalUsd,
		BtcPrice: req.BtcPrice,
		EthPrice: req.EthPrice,
	}
	if req.Month != nil {
		year := yearOfMonth(*req.Month)
		patch.Year = &year
	}

	if err := s.snapshots.UpdateMonthly(ctx, tenantID, id, patch); err != nil {
		return model.MonthlySnapshot{}, err
	}
	return s.snapshots.GetMonthly(ctx, tenantID, id)
}

// DeleteMonthlySnapshot removes one monthly snapshot. Deleting an unknown
// id is a no-op.
func (s *SnapshotService) DeleteMonthlySnapshot(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.snapshots.DeleteMonthly(ctx, tenantID, id)
}

// previousDaily finds the most recent snapshot strictly before date.
// ISO dates compare lexicographically so no parsing is needed.
func previousDaily(series []model.DailySnapshot, date string) (model.DailySnapshot, bool) {
	var prev model.DailySnapshot
	found := false
	for _, s := range series {
		if s.Date < date && (!found || s.Date > prev.Date) {
			prev = s
			found = true
		}
	}
	return prev, found
}

func snapshotForMonth(series []model.MonthlySnapshot, month string) (model.MonthlySnapshot, bool) {
	for _, s := range series {
		if s.Month == month {
			return s, true
		}
	}
	return model.MonthlySnapshot{}, false
}

// precedingMonth returns the YYYY-MM month before the given one. An
// unparseable month yields an empty string, which matches no snapshot.
func precedingMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format("2006-01")
}

func yearOfMonth(month string) int {
	if len(month) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(month[:4])
	return year
}
