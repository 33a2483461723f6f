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

// EventService handles market event business logic. Events are tenant-wide
// annotations, not tied to any portfolio.
type EventService struct {
	entities store.EntityStore
}

// NewEventService creates a new EventService over the given store.
func NewEventService(entities store.EntityStore) *EventService {
	return &EventService{entities: entities}
}

// GetMarketEvents retrieves all market events of the calling tenant.
func (s *EventService) GetMarketEvents(ctx context.Context) ([]model.MarketEvent, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.entities.ListMarketEvents(ctx, tenantID)
}

// GetMarketEvent retrieves a single market event by id.
func (s *EventService) GetMarketEvent(ctx context.Context, id string) (model.MarketEvent, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MarketEvent{}, err
	}
	return s.entities.GetMarketEvent(ctx, tenantID, id)
}

// CreateMarketEvent creates a market event with a generated id.
func (s *EventService) CreateMarketEvent(ctx context.Context, req request.CreateMarketEventRequest) (model.MarketEvent, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MarketEvent{}, err
	}

	coins := req.Coins
	if coins == nil {
		coins = []string{}
	}

	e := model.MarketEvent{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Impact:      req.Impact,
		Coins:       coins,
		Source:      req.Source,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.entities.CreateMarketEvent(ctx, tenantID, e); err != nil {
		return model.MarketEvent{}, err
	}
	return e, nil
}

// UpdateMarketEvent applies the provided fields and returns the updated
// event.
func (s *EventService) UpdateMarketEvent(ctx context.Context, id string, req request.UpdateMarketEventRequest) (model.MarketEvent, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.MarketEvent{}, err
	}

	patch := model.MarketEventPatch{
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Impact:      req.Impact,
		Coins:       req.Coins,
		Source:      req.Source,
	}
	if err := s.entities.UpdateMarketEvent(ctx, tenantID, id, patch); err != nil {
		return model.MarketEvent{}, err
	}
	return s.entities.GetMarketEvent(ctx, tenantID, id)
}

// DeleteMarketEvent removes an event. Deleting an unknown id is a no-op.
func (s *EventService) DeleteMarketEvent(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.entities.DeleteMarketEvent(ctx, tenantID, id)
}
