package remote

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanJournalEntry(scan func(dest ...any) error) (model.JournalEntry, error) {
	var e model.JournalEntry
	var tagsRaw []byte
	var createdAt time.Time
	var updatedAt *time.Time

	if err := scan(
		&e.ID, &e.PortfolioID, &e.Date, &e.Title, &e.Content, &e.Mood,
		&tagsRaw, &createdAt, &updatedAt,
	); err != nil {
		return model.JournalEntry{}, err
	}

	tags, err := unmarshalStrings(tagsRaw)
	if err != nil {
		return model.JournalEntry{}, err
	}
	e.Tags = tags
	e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	if updatedAt != nil {
		e.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}
	return e, nil
}

// ListJournalEntries retrieves the journal entries of a portfolio owned
// by the tenant, newest date first.
func (s *Store) ListJournalEntries(ctx context.Context, tenantID, portfolioID string) ([]model.JournalEntry, error) {
	query := `
	  SELECT id, portfolio_id, date, title, content, mood, tags, created_at, updated_at
	  FROM journal_entry
	  WHERE user_id = $1 AND portfolio_id = $2
	  ORDER BY date DESC
	`

	rows, err := s.pool.Query(ctx, query, tenantID, portfolioID)
	if err != nil {
		return nil, wrapErr("failed to query journal_entry table", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan journal_entry row", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating journal_entry table", err)
	}

	return entries, nil
}

// GetJournalEntry retrieves a single journal entry owned by the tenant.
func (s *Store) GetJournalEntry(ctx context.Context, tenantID, id string) (model.JournalEntry, error) {
	query := `
	  SELECT id, portfolio_id, date, title, content, mood, tags, created_at, updated_at
	  FROM journal_entry
	  WHERE user_id = $1 AND id = $2
	`

	e, err := scanJournalEntry(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.JournalEntry{}, apperrors.ErrJournalEntryNotFound
	}
	if err != nil {
		return model.JournalEntry{}, wrapErr("failed to query journal_entry", err)
	}

	return e, nil
}

// CreateJournalEntry inserts a new journal entry. A second entry for the
// same portfolio and date surfaces as a conflict.
func (s *Store) CreateJournalEntry(ctx context.Context, tenantID string, e model.JournalEntry) error {
	createdAt, err := parseTimestamp(e.CreatedAt)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(e.Tags)
	if err != nil {
		return err
	}

	query := `
	  INSERT INTO journal_entry (id, user_id, portfolio_id, date, title, content, mood, tags, created_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if _, err := s.pool.Exec(ctx, query,
		e.ID, tenantID, e.PortfolioID, e.Date, e.Title, e.Content, e.Mood, tags, createdAt,
	); err != nil {
		return wrapErr("failed to insert journal_entry", err)
	}
	return nil
}

// UpdateJournalEntry applies non-nil patch fields and stamps updated_at.
// Moving an entry onto a date already used by the portfolio surfaces as
// a conflict.
func (s *Store) UpdateJournalEntry(ctx context.Context, tenantID, id string, patch model.JournalEntryPatch) error {
	e, err := s.GetJournalEntry(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Mood != nil {
		e.Mood = *patch.Mood
	}
	if patch.Tags != nil {
		e.Tags = *patch.Tags
	}

	tags, err := marshalJSON(e.Tags)
	if err != nil {
		return err
	}

	query := `
	  UPDATE journal_entry SET date = $1, title = $2, content = $3, mood = $4, tags = $5, updated_at = $6
	  WHERE user_id = $7 AND id = $8
	`
	if _, err := s.pool.Exec(ctx, query,
		e.Date, e.Title, e.Content, e.Mood, tags, time.Now().UTC(), tenantID, id,
	); err != nil {
		return wrapErr("failed to update journal_entry", err)
	}
	return nil
}

// DeleteJournalEntry removes a journal entry owned by the tenant.
// Deleting a non-existent id is a no-op.
func (s *Store) DeleteJournalEntry(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM journal_entry WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete journal_entry", err)
	}
	return nil
}
