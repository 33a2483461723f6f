package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// WalletService handles wallet business logic. Every wallet belongs to
// exactly one portfolio.
type WalletService struct {
	entities store.EntityStore
}

// NewWalletService creates a new WalletService over the given store.
func NewWalletService(entities store.EntityStore) *WalletService {
	return &WalletService{entities: entities}
}

// GetWallets retrieves the wallets of one portfolio.
func (s *WalletService) GetWallets(ctx context.Context, portfolioID string) ([]model.Wallet, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.entities.ListWallets(ctx, tenantID, portfolioID)
}

// GetWallet retrieves a single wallet by id.
func (s *WalletService) GetWallet(ctx context.Context, id string) (model.Wallet, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Wallet{}, err
	}
	return s.entities.GetWallet(ctx, tenantID, id)
}

// CreateWallet creates a wallet under an existing portfolio. The portfolio
// must exist; a dangling portfolio id surfaces as NotFound.
func (s *WalletService) CreateWallet(ctx context.Context, req request.CreateWalletRequest) (model.Wallet, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Wallet{}, err
	}

	if _, err := s.entities.GetPortfolio(ctx, tenantID, req.PortfolioID); err != nil {
		return model.Wallet{}, err
	}

	w := model.Wallet{
		ID:          uuid.NewString(),
		PortfolioID: req.PortfolioID,
		Name:        req.Name,
		Address:     req.Address,
		Chain:       req.Chain,
		Color:       req.Color,
	}

	if err := s.entities.CreateWallet(ctx, tenantID, w); err != nil {
		return model.Wallet{}, err
	}
	return w, nil
}

// UpdateWallet applies the provided fields and returns the updated wallet.
func (s *WalletService) UpdateWallet(ctx context.Context, id string, req request.UpdateWalletRequest) (model.Wallet, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Wallet{}, err
	}

	patch := model.WalletPatch{
		Name:    req.Name,
		Address: req.Address,
		Chain:   req.Chain,
		Color:   req.Color,
	}
	if err := s.entities.UpdateWallet(ctx, tenantID, id, patch); err != nil {
		return model.Wallet{}, err
	}
	return s.entities.GetWallet(ctx, tenantID, id)
}

// DeleteWallet removes a wallet. Snapshot balances referencing it are kept
// and render under a sentinel name in allocations.
func (s *WalletService) DeleteWallet(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.entities.DeleteWallet(ctx, tenantID, id)
}
