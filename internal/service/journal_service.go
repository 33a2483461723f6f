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

// JournalService handles journal entry business logic. Each portfolio holds
// at most one entry per date.
type JournalService struct {
	entities store.EntityStore
}

// NewJournalService creates a new JournalService over the given store.
func NewJournalService(entities store.EntityStore) *JournalService {
	return &JournalService{entities: entities}
}

// GetJournalEntries retrieves the journal entries of one portfolio.
func (s *JournalService) GetJournalEntries(ctx context.Context, portfolioID string) ([]model.JournalEntry, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.entities.ListJournalEntries(ctx, tenantID, portfolioID)
}

// GetJournalEntry retrieves a single journal entry by id.
func (s *JournalService) GetJournalEntry(ctx context.Context, id string) (model.JournalEntry, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.JournalEntry{}, err
	}
	return s.entities.GetJournalEntry(ctx, tenantID, id)
}

// CreateJournalEntry creates an entry under an existing portfolio. A second
// entry for the same date is a conflict.
func (s *JournalService) CreateJournalEntry(ctx context.Context, req request.CreateJournalEntryRequest) (model.JournalEntry, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.JournalEntry{}, err
	}

	if _, err := s.entities.GetPortfolio(ctx, tenantID, req.PortfolioID); err != nil {
		return model.JournalEntry{}, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	e := model.JournalEntry{
		ID:          uuid.NewString(),
		PortfolioID: req.PortfolioID,
		Date:        req.Date,
		Title:       req.Title,
		Content:     req.Content,
		Mood:        req.Mood,
		Tags:        tags,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.entities.CreateJournalEntry(ctx, tenantID, e); err != nil {
		return model.JournalEntry{}, err
	}
	return e, nil
}

// UpdateJournalEntry applies the provided fields and returns the updated
// entry with its fresh updatedAt stamp.
func (s *JournalService) UpdateJournalEntry(ctx context.Context, id string, req request.UpdateJournalEntryRequest) (model.JournalEntry, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.JournalEntry{}, err
	}

	patch := model.JournalEntryPatch{
		Date:    req.Date,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Tags:    req.Tags,
	}
	if err := s.entities.UpdateJournalEntry(ctx, tenantID, id, patch); err != nil {
		return model.JournalEntry{}, err
	}
	return s.entities.GetJournalEntry(ctx, tenantID, id)
}

// DeleteJournalEntry removes an entry. Deleting an unknown id is a no-op.
func (s *JournalService) DeleteJournalEntry(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.entities.DeleteJournalEntry(ctx, tenantID, id)
}
