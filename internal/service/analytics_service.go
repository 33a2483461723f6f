package service

import (
	"context"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/analytics"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// AnalyticsService loads snapshot data from the stores and hands it to the
// pure analytics engine. It holds no state and performs no writes.
type AnalyticsService struct {
	snapshots store.SnapshotStore
	entities  store.EntityStore
}

// NewAnalyticsService creates a new AnalyticsService over the given stores.
func NewAnalyticsService(snapshots store.SnapshotStore, entities store.EntityStore) *AnalyticsService {
	return &AnalyticsService{snapshots: snapshots, entities: entities}
}

// GetPerformanceMetrics computes current total, 24h/7d/30d changes and the
// all-time high for one portfolio.
func (s *AnalyticsService) GetPerformanceMetrics(ctx context.Context, portfolioID string) (model.PerformanceMetrics, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.PerformanceMetrics{}, err
	}

	daily, err := s.snapshots.ListDaily(ctx, tenantID, portfolioID)
	if err != nil {
		return model.PerformanceMetrics{}, err
	}
	return analytics.PerformanceMetrics(daily), nil
}

// GetWalletAllocations breaks the latest daily snapshot down per wallet.
// A portfolio without snapshots yields an empty list.
func (s *AnalyticsService) GetWalletAllocations(ctx context.Context, portfolioID string) ([]model.WalletAllocation, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.snapshots.ListDaily(ctx, tenantID, portfolioID)
	if err != nil {
		return nil, err
	}
	if len(daily) == 0 {
		return []model.WalletAllocation{}, nil
	}

	wallets, err := s.entities.ListWallets(ctx, tenantID, portfolioID)
	if err != nil {
		return nil, err
	}

	// ListDaily returns the series ascending by date.
	latest := daily[len(daily)-1]
	return analytics.WalletAllocations(latest, wallets), nil
}

// GetMonthlySeries returns exactly twelve month buckets for the given year,
// with months lacking a snapshot flagged as having no data.
func (s *AnalyticsService) GetMonthlySeries(ctx context.Context, portfolioID string, year int) ([]model.MonthlyPoint, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := s.snapshots.ListMonthly(ctx, tenantID, portfolioID)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlySeries(monthly, year), nil
}

// GetChartData returns the last limit points of the daily series as
// date/total pairs. A non-positive limit returns the whole series.
func (s *AnalyticsService) GetChartData(ctx context.Context, portfolioID string, limit int) ([]model.ChartPoint, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.snapshots.ListDaily(ctx, tenantID, portfolioID)
	if err != nil {
		return nil, err
	}
	return analytics.ChartData(daily, limit), nil
}

// GetSparklineData returns the small trailing window used for inline trend
// rendering.
func (s *AnalyticsService) GetSparklineData(ctx context.Context, portfolioID string) ([]model.ChartPoint, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.snapshots.ListDaily(ctx, tenantID, portfolioID)
	if err != nil {
		return nil, err
	}
	return analytics.SparklineData(daily), nil
}
