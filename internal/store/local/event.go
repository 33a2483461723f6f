package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanMarketEvent(scan func(dest ...any) error) (model.MarketEvent, error) {
	var e model.MarketEvent
	var description, coins, source sql.NullString

	if err := scan(
		&e.ID, &e.Date, &e.Title, &description, &e.Type, &e.Impact,
		&coins, &source, &e.CreatedAt,
	); err != nil {
		return model.MarketEvent{}, err
	}

	e.Description = description.String
	e.Source = source.String
	if coins.Valid {
		decoded, err := unmarshalStrings(coins.String)
		if err != nil {
			return model.MarketEvent{}, err
		}
		e.Coins = decoded
	}
	return e, nil
}

// ListMarketEvents retrieves all market events sorted ascending by date.
// Events are tenant-scoped, not portfolio-scoped.
func (s *Store) ListMarketEvents(ctx context.Context, tenantID string) ([]model.MarketEvent, error) {
	query := `
	  SELECT id, date, title, description, type, impact, coins, source, created_at
	  FROM market_event
	  ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_event table: %w", err)
	}
	defer rows.Close()

	events := []model.MarketEvent{}
	for rows.Next() {
		e, err := scanMarketEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market_event table results: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_event table: %w", err)
	}

	return events, nil
}

// GetMarketEvent retrieves a single market event by id.
func (s *Store) GetMarketEvent(ctx context.Context, tenantID, id string) (model.MarketEvent, error) {
	query := `
	  SELECT id, date, title, description, type, impact, coins, source, created_at
	  FROM market_event
	  WHERE id = ?
	`

	e, err := scanMarketEvent(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.MarketEvent{}, apperrors.ErrMarketEventNotFound
	}
	if err != nil {
		return model.MarketEvent{}, fmt.Errorf("failed to query market_event: %w", err)
	}

	return e, nil
}

// CreateMarketEvent inserts a new market event row.
func (s *Store) CreateMarketEvent(ctx context.Context, tenantID string, e model.MarketEvent) error {
	var coins any
	if e.Coins != nil {
		encoded, err := marshalJSON(e.Coins)
		if err != nil {
			return err
		}
		coins = encoded
	}

	query := `
	  INSERT INTO market_event (id, date, title, description, type, impact, coins, source, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query,
		e.ID, e.Date, e.Title, nullable(e.Description), e.Type, e.Impact,
		coins, nullable(e.Source), e.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert market_event: %w", err)
	}
	return nil
}

// UpdateMarketEvent applies non-nil patch fields to an existing event.
func (s *Store) UpdateMarketEvent(ctx context.Context, tenantID, id string, patch model.MarketEventPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		e, err := scanMarketEvent(tx.QueryRowContext(ctx,
			`SELECT id, date, title, description, type, impact, coins, source, created_at
			 FROM market_event WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrMarketEventNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query market_event: %w", err)
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

		var coins any
		if e.Coins != nil {
			encoded, err := marshalJSON(e.Coins)
			if err != nil {
				return err
			}
			coins = encoded
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE market_event SET date = ?, title = ?, description = ?, type = ?, impact = ?, coins = ?, source = ?
			 WHERE id = ?`,
			e.Date, e.Title, nullable(e.Description), e.Type, e.Impact, coins, nullable(e.Source), id,
		); err != nil {
			return fmt.Errorf("failed to update market_event: %w", err)
		}
		return nil
	})
}

// DeleteMarketEvent removes a market event. Deleting a non-existent id is
// a no-op.
func (s *Store) DeleteMarketEvent(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM market_event WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete market_event: %w", err)
	}
	return nil
}
