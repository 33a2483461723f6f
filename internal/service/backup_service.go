package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/importer"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// BackupService builds full export payloads and applies imports. Backup
// import is strictly additive: rows whose id already exists are skipped,
// never overwritten. Tabular row import goes through the snapshot upsert
// path instead and follows its replace-by-natural-key rule.
type BackupService struct {
	snapshots       store.SnapshotStore
	entities        store.EntityStore
	snapshotService *SnapshotService
}

// NewBackupService creates a new BackupService over the given stores.
func NewBackupService(snapshots store.SnapshotStore, entities store.EntityStore, snapshotService *SnapshotService) *BackupService {
	return &BackupService{
		snapshots:       snapshots,
		entities:        entities,
		snapshotService: snapshotService,
	}
}

// ImportRowsResult reports the outcome of a tabular snapshot import.
// Errors are row-indexed validation failures; warnings flag wallet names
// that could not be resolved against the portfolio.
type ImportRowsResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ExportAll builds the complete backup payload for the calling tenant.
// Snapshot, goal and journal collections are loaded concurrently per
// portfolio; the payload is a plain read and holds no locks.
func (s *BackupService) ExportAll(ctx context.Context) (model.Backup, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Backup{}, err
	}

	backup := model.Backup{
		ExportedAt:       time.Now().UTC().Format(time.RFC3339),
		Wallets:          []model.Wallet{},
		DailySnapshots:   []model.DailySnapshot{},
		MonthlySnapshots: []model.MonthlySnapshot{},
		Goals:            []model.Goal{},
		JournalEntries:   []model.JournalEntry{},
	}

	backup.Portfolios, err = s.entities.ListPortfolios(ctx, tenantID)
	if err != nil {
		return model.Backup{}, err
	}

	g, gctx := errgroup.WithContext(ctx)

	perPortfolio := make([]struct {
		wallets []model.Wallet
		daily   []model.DailySnapshot
		monthly []model.MonthlySnapshot
		goals   []model.Goal
		journal []model.JournalEntry
	}, len(backup.Portfolios))

	for i, p := range backup.Portfolios {
		i, p := i, p
		g.Go(func() error {
			var err error
			if perPortfolio[i].wallets, err = s.entities.ListWallets(gctx, tenantID, p.ID); err != nil {
				return err
			}
			if perPortfolio[i].daily, err = s.snapshots.ListDaily(gctx, tenantID, p.ID); err != nil {
				return err
			}
			if perPortfolio[i].monthly, err = s.snapshots.ListMonthly(gctx, tenantID, p.ID); err != nil {
				return err
			}
			if perPortfolio[i].goals, err = s.entities.ListGoals(gctx, tenantID, p.ID); err != nil {
				return err
			}
			perPortfolio[i].journal, err = s.entities.ListJournalEntries(gctx, tenantID, p.ID)
			return err
		})
	}

	var events []model.MarketEvent
	g.Go(func() error {
		var err error
		events, err = s.entities.ListMarketEvents(gctx, tenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Backup{}, err
	}

	for _, pp := range perPortfolio {
		backup.Wallets = append(backup.Wallets, pp.wallets...)
		backup.DailySnapshots = append(backup.DailySnapshots, pp.daily...)
		backup.MonthlySnapshots = append(backup.MonthlySnapshots, pp.monthly...)
		backup.Goals = append(backup.Goals, pp.goals...)
		backup.JournalEntries = append(backup.JournalEntries, pp.journal...)
	}
	backup.MarketEvents = events

	return backup, nil
}

// ImportBackup restores entities from a backup payload. Entities whose id
// already exists in the target store are left untouched, so re-running the
// same import is idempotent and never clobbers local edits.
func (s *BackupService) ImportBackup(ctx context.Context, backup model.Backup) (model.ImportCounts, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.ImportCounts{}, err
	}

	counts := model.ImportCounts{}

	for _, p := range backup.Portfolios {
		created, err := importUnlessExists(
			func() error { _, err := s.entities.GetPortfolio(ctx, tenantID, p.ID); return err },
			func() error { return s.entities.CreatePortfolio(ctx, tenantID, p) },
		)
		if err != nil {
			return counts, err
		}
		if created {
			counts.Portfolios++
		}
	}

	for _, w := range backup.Wallets {
		created, err := importUnlessExists(
			func() error { _, err := s.entities.GetWallet(ctx, tenantID, w.ID); return err },
			func() error { return s.entities.CreateWallet(ctx, tenantID, w) },
		)
		if err != nil {
			return counts, err
		}
		if created {
			counts.Wallets++
		}
	}

	// Snapshots are skipped when either their id or their natural key is
	// already taken; routing them through the upsert path would replace the
	// same-date row of a concurrent local edit.
	dailyKeys := map[string]bool{}
	monthlyKeys := map[string]bool{}
	seenPortfolios := map[string]bool{}
	loadKeys := func(portfolioID string) error {
		if seenPortfolios[portfolioID] {
			return nil
		}
		seenPortfolios[portfolioID] = true

		daily, err := s.snapshots.ListDaily(ctx, tenantID, portfolioID)
		if err != nil {
			return err
		}
		for _, snap := range daily {
			dailyKeys[portfolioID+"|"+snap.Date] = true
		}
		monthly, err := s.snapshots.ListMonthly(ctx, tenantID, portfolioID)
		if err != nil {
			return err
		}
		for _, snap := range monthly {
			monthlyKeys[portfolioID+"|"+snap.Month] = true
		}
		return nil
	}

	for _, snap := range backup.DailySnapshots {
		if err := loadKeys(snap.PortfolioID); err != nil {
			return counts, err
		}
		if dailyKeys[snap.PortfolioID+"|"+snap.Date] {
			continue
		}
		if _, err := s.snapshots.GetDaily(ctx, tenantID, snap.ID); err == nil {
			continue
		} else if !isNotFound(err) {
			return counts, err
		}
		if _, err := s.snapshots.UpsertDaily(ctx, tenantID, snap); err != nil {
			return counts, err
		}
		dailyKeys[snap.PortfolioID+"|"+snap.Date] = true
		counts.DailySnapshots++
	}

	for _, snap := range backup.MonthlySnapshots {
		if err := loadKeys(snap.PortfolioID); err != nil {
			return counts, err
		}
		if monthlyKeys[snap.PortfolioID+"|"+snap.Month] {
			continue
		}
		if _, err := s.snapshots.GetMonthly(ctx, tenantID, snap.ID); err == nil {
			continue
		} else if !isNotFound(err) {
			return counts, err
		}
		if _, err := s.snapshots.UpsertMonthly(ctx, tenantID, snap); err != nil {
			return counts, err
		}
		monthlyKeys[snap.PortfolioID+"|"+snap.Month] = true
		counts.MonthlySnapshots++
	}

	for _, goal := range backup.Goals {
		created, err := importUnlessExists(
			func() error { _, err := s.entities.GetGoal(ctx, tenantID, goal.ID); return err },
			func() error { return s.entities.CreateGoal(ctx, tenantID, goal) },
		)
		if err != nil {
			return counts, err
		}
		if created {
			counts.Goals++
		}
	}

	for _, entry := range backup.JournalEntries {
		created, err := importUnlessExists(
			func() error { _, err := s.entities.GetJournalEntry(ctx, tenantID, entry.ID); return err },
			func() error { return s.entities.CreateJournalEntry(ctx, tenantID, entry) },
		)
		if err != nil {
			return counts, err
		}
		if created {
			counts.JournalEntries++
		}
	}

	for _, event := range backup.MarketEvents {
		created, err := importUnlessExists(
			func() error { _, err := s.entities.GetMarketEvent(ctx, tenantID, event.ID); return err },
			func() error { return s.entities.CreateMarketEvent(ctx, tenantID, event) },
		)
		if err != nil {
			return counts, err
		}
		if created {
			counts.MarketEvents++
		}
	}

	return counts, nil
}

// ImportRows parses, validates and imports tabular snapshot rows into one
// portfolio. Wallet names are matched case-insensitively against the
// portfolio's wallets; a row is imported when at least one of its names
// resolves, and unresolved names are reported as warnings.
func (s *BackupService) ImportRows(ctx context.Context, req request.ImportRowsRequest) (ImportRowsResult, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return ImportRowsResult{}, err
	}

	var raw []importer.RawRow
	switch strings.ToLower(req.Format) {
	case "csv":
		raw, err = importer.ParseCSV(strings.NewReader(req.Data))
	case "json":
		raw, err = importer.ParseJSON(strings.NewReader(req.Data))
	default:
		return ImportRowsResult{}, fmt.Errorf("%w: unknown import format %q", apperrors.ErrValidation, req.Format)
	}
	if err != nil {
		return ImportRowsResult{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	validated := importer.Validate(raw)
	result := ImportRowsResult{Errors: validated.Errors, Warnings: []string{}}

	wallets, err := s.entities.ListWallets(ctx, tenantID, req.PortfolioID)
	if err != nil {
		return ImportRowsResult{}, err
	}
	byName := make(map[string]model.Wallet, len(wallets))
	for _, w := range wallets {
		byName[strings.ToLower(w.Name)] = w
	}

	for _, row := range validated.Valid {
		balances := []request.WalletBalanceRequest{}
		for name, value := range row.Wallets {
			w, ok := byName[strings.ToLower(name)]
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown wallet %q for %s", name, row.Date))
				continue
			}
			balances = append(balances, request.WalletBalanceRequest{WalletID: w.ID, ValueUsd: value})
		}
		if len(balances) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("No known wallets in row for %s, skipped", row.Date))
			continue
		}

		_, err := s.snapshotService.UpsertDailySnapshot(ctx, request.UpsertDailySnapshotRequest{
			PortfolioID:    req.PortfolioID,
			Date:           row.Date,
			WalletBalances: balances,
		})
		if err != nil {
			return result, err
		}
		result.Imported++
	}

	return result, nil
}

// importUnlessExists runs create when exists reports NotFound. It returns
// whether a row was created.
func importUnlessExists(exists func() error, create func() error) (bool, error) {
	err := exists()
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, err
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrPortfolioNotFound) ||
		errors.Is(err, apperrors.ErrWalletNotFound) ||
		errors.Is(err, apperrors.ErrSnapshotNotFound) ||
		errors.Is(err, apperrors.ErrGoalNotFound) ||
		errors.Is(err, apperrors.ErrJournalEntryNotFound) ||
		errors.Is(err, apperrors.ErrMarketEventNotFound)
}
