package remote

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanMarketEvent(scan func(dest ...any) error) (model.MarketEvent, error) {
	var e model.MarketEvent
	var description, source *string
	var coinsRaw []byte
	var createdAt time.Time

	if err := scan(
		&e.ID, &e.Date, &e.Title, &description, &e.Type, &e.Impact,
		&coinsRaw, &source, &createdAt,
	); err != nil {
		return model.MarketEvent{}, err
	}

	if description != nil {
		e.Description = *description
	}
	if source != nil {
		e.Source = *source
	}
	coins, err := unmarshalStrings(coinsRaw)
	if err != nil {
		return model.MarketEvent{}, err
	}
	e.Coins = coins
	e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return e, nil
}

// ListMarketEvents retrieves all market events recorded by the tenant,
// newest date first. Events are tenant-scoped, not portfolio-scoped.
func (s *Store) ListMarketEvents(ctx context.Context, tenantID string) ([]model.MarketEvent, error) {
	query := `
	  SELECT id, date, title, description, type, impact, coins, source, created_at
	  FROM market_event
	  WHERE user_id = $1
	  ORDER BY date DESC
	`

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, wrapErr("failed to query market_event table", err)
	}
	defer rows.Close()

	events := []model.MarketEvent{}
	for rows.Next() {
		e, err := scanMarketEvent(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan market_event row", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating market_event table", err)
	}

	return events, nil
}

// GetMarketEvent retrieves a single market event owned by the tenant.
func (s *Store) GetMarketEvent(ctx context.Context, tenantID, id string) (model.MarketEvent, error) {
	query := `
	  SELECT id, date, title, description, type, impact, coins, source, created_at
	  FROM market_event
	  WHERE user_id = $1 AND id = $2
	`

	e, err := scanMarketEvent(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MarketEvent{}, apperrors.ErrMarketEventNotFound
	}
	if err != nil {
		return model.MarketEvent{}, wrapErr("failed to query market_event", err)
	}

	return e, nil
}

// CreateMarketEvent inserts a new market event row for the tenant.
func (s *Store) CreateMarketEvent(ctx context.Context, tenantID string, e model.MarketEvent) error {
	createdAt, err := parseTimestamp(e.CreatedAt)
	if err != nil {
		return err
	}
	coins, err := marshalJSON(e.Coins)
	if err != nil {
		return err
	}

	query := `
	  INSERT INTO market_event (id, user_id, date, title, description, type, impact, coins, source, created_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := s.pool.Exec(ctx, query,
		e.ID, tenantID, e.Date, e.Title, nullable(e.Description),
		e.Type, e.Impact, coins, nullable(e.Source), createdAt,
	); err != nil {
		return wrapErr("failed to insert market_event", err)
	}
	return nil
}

// UpdateMarketEvent applies non-nil patch fields to a market event owned
// by the tenant.
func (s *Store) UpdateMarketEvent(ctx context.Context, tenantID, id string, patch model.MarketEventPatch) error {
	e, err := s.GetMarketEvent(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Type != nil {
		e.Type = *patch.Type
	}
	if patch.Impact != nil {
		e.Impact = *patch.Impact
	}
	if patch.Coins != nil {
		e.Coins = *patch.Coins
	}
	if patch.Source != nil {
		e.Source = *patch.Source
	}

	coins, err := marshalJSON(e.Coins)
	if err != nil {
		return err
	}

	query := `
	  UPDATE market_event
	  SET date = $1, title = $2, description = $3, type = $4, impact = $5, coins = $6, source = $7
	  WHERE user_id = $8 AND id = $9
	`
	if _, err := s.pool.Exec(ctx, query,
		e.Date, e.Title, nullable(e.Description), e.Type, e.Impact,
		coins, nullable(e.Source), tenantID, id,
	); err != nil {
		return wrapErr("failed to update market_event", err)
	}
	return nil
}

// DeleteMarketEvent removes a market event owned by the tenant. Deleting
// a non-existent id is a no-op.
func (s *Store) DeleteMarketEvent(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM market_event WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete market_event", err)
	}
	return nil
}
