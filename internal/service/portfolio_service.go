package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// PortfolioService handles portfolio business logic. Portfolios are the
// aggregate root: deleting one cascades to every dependent entity through
// the store.
type PortfolioService struct {
	entities store.EntityStore
}

// NewPortfolioService creates a new PortfolioService over the given store.
func NewPortfolioService(entities store.EntityStore) *PortfolioService {
	return &PortfolioService{entities: entities}
}

// GetAllPortfolios retrieves all portfolios owned by the calling tenant.
func (s *PortfolioService) GetAllPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.entities.ListPortfolios(ctx, tenantID)
}

// GetPortfolio retrieves a single portfolio by id.
func (s *PortfolioService) GetPortfolio(ctx context.Context, id string) (model.Portfolio, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Portfolio{}, err
	}
	return s.entities.GetPortfolio(ctx, tenantID, id)
}

// CreatePortfolio creates a new portfolio with a generated id.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (model.Portfolio, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Portfolio{}, err
	}

	p := model.Portfolio{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.entities.CreatePortfolio(ctx, tenantID, p); err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

// UpdatePortfolio applies the provided fields and returns the updated
// portfolio.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, id string, req request.UpdatePortfolioRequest) (model.Portfolio, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Portfolio{}, err
	}

	patch := model.PortfolioPatch{
		Name:  req.Name,
		Color: req.Color,
	}
	if err := s.entities.UpdatePortfolio(ctx, tenantID, id, patch); err != nil {
		return model.Portfolio{}, err
	}
	return s.entities.GetPortfolio(ctx, tenantID, id)
}

// DeletePortfolio removes a portfolio and everything it owns. Deleting an
// unknown id is a no-op.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.entities.DeletePortfolio(ctx, tenantID, id)
}
