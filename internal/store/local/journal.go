package local

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanJournalEntry(scan func(dest ...any) error) (model.JournalEntry, error) {
	var e model.JournalEntry
	var tags string
	var updatedAt sql.NullString

	if err := scan(
		&e.ID, &e.PortfolioID, &e.Date, &e.Title, &e.Content,
		&e.Mood, &tags, &e.CreatedAt, &updatedAt,
	); err != nil {
		return model.JournalEntry{}, err
	}

	decoded, err := unmarshalStrings(tags)
	if err != nil {
		return model.JournalEntry{}, err
	}
	e.Tags = decoded
	e.UpdatedAt = updatedAt.String
	return e, nil
}

// ListJournalEntries retrieves all journal entries of a portfolio sorted
// ascending by date.
func (s *Store) ListJournalEntries(ctx context.Context, tenantID, portfolioID string) ([]model.JournalEntry, error) {
	query := `
	  SELECT id, portfolio_id, date, title, content, mood, tags, created_at, updated_at
	  FROM journal_entry
	  WHERE portfolio_id = ?
	  ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal_entry table: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal_entry table results: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal_entry table: %w", err)
	}

	return entries, nil
}

// GetJournalEntry retrieves a single journal entry by id.
func (s *Store) GetJournalEntry(ctx context.Context, tenantID, id string) (model.JournalEntry, error) {
	query := `
	  SELECT id, portfolio_id, date, title, content, mood, tags, created_at, updated_at
	  FROM journal_entry
	  WHERE id = ?
	`

	e, err := scanJournalEntry(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.JournalEntry{}, apperrors.ErrJournalEntryNotFound
	}
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("failed to query journal_entry: %w", err)
	}

	return e, nil
}

// CreateJournalEntry inserts a new journal entry. One entry exists per
// (portfolioId, date); a second entry for the same day is a conflict.
func (s *Store) CreateJournalEntry(ctx context.Context, tenantID string, e model.JournalEntry) error {
	tags, err := marshalJSON(e.Tags)
	if err != nil {
		return err
	}

	query := `
	  INSERT INTO journal_entry (id, portfolio_id, date, title, content, mood, tags, created_at, updated_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		e.ID, e.PortfolioID, e.Date, e.Title, e.Content, e.Mood, tags,
		e.CreatedAt, nullable(e.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: journal entry for %s already exists", apperrors.ErrConflict, e.Date)
	}
	if err != nil {
		return fmt.Errorf("failed to insert journal_entry: %w", err)
	}
	return nil
}

// UpdateJournalEntry applies non-nil patch fields and stamps updatedAt.
func (s *Store) UpdateJournalEntry(ctx context.Context, tenantID, id string, patch model.JournalEntryPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		e, err := scanJournalEntry(tx.QueryRowContext(ctx,
			`SELECT id, portfolio_id, date, title, content, mood, tags, created_at, updated_at
			 FROM journal_entry WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrJournalEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query journal_entry: %w", err)
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

		updatedAt := time.Now().UTC().Format(time.RFC3339)
		_, err = tx.ExecContext(ctx,
			`UPDATE journal_entry SET date = ?, title = ?, content = ?, mood = ?, tags = ?, updated_at = ?
			 WHERE id = ?`,
			e.Date, e.Title, e.Content, e.Mood, tags, updatedAt, id,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry for %s already exists", apperrors.ErrConflict, e.Date)
		}
		if err != nil {
			return fmt.Errorf("failed to update journal_entry: %w", err)
		}
		return nil
	})
}

// DeleteJournalEntry removes a journal entry. Deleting a non-existent id
// is a no-op.
func (s *Store) DeleteJournalEntry(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_entry WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete journal_entry: %w", err)
	}
	return nil
}
