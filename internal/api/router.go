// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// Services bundles everything the router exposes.
type Services struct {
	System    *service.SystemService
	Portfolio *service.PortfolioService
	Wallet    *service.WalletService
	Snapshot  *service.SnapshotService
	Analytics *service.AnalyticsService
	Goal      *service.GoalService
	Journal   *service.JournalService
	Event     *service.EventService
	Backup    *service.BackupService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Tenant resolution applies to everything under /api
	tenant := custommiddleware.Tenant(cfg.Storage.Mode, cfg.DefaultTenantID)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(tenant)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/prices", systemHandler.Prices)
			r.Get("/remote-dsn", systemHandler.RemoteDSN)
			r.Put("/remote-dsn", systemHandler.SetRemoteDSN)
		})

		portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
		walletHandler := handlers.NewWalletHandler(svcs.Wallet)
		snapshotHandler := handlers.NewSnapshotHandler(svcs.Snapshot)
		analyticsHandler := handlers.NewAnalyticsHandler(svcs.Analytics)
		goalHandler := handlers.NewGoalHandler(svcs.Goal)
		journalHandler := handlers.NewJournalHandler(svcs.Journal)
		eventHandler := handlers.NewEventHandler(svcs.Event)
		backupHandler := handlers.NewBackupHandler(svcs.Backup)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.Portfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)

				r.Get("/wallet", walletHandler.Wallets)
				r.Post("/wallet", walletHandler.CreateWallet)

				r.Get("/snapshot/daily", snapshotHandler.DailySnapshots)
				r.Post("/snapshot/daily", snapshotHandler.UpsertDailySnapshot)
				r.Get("/snapshot/monthly", snapshotHandler.MonthlySnapshots)
				r.Post("/snapshot/monthly", snapshotHandler.UpsertMonthlySnapshot)

				r.Get("/metrics", analyticsHandler.Metrics)
				r.Get("/allocations", analyticsHandler.Allocations)
				r.Get("/monthly-series", analyticsHandler.MonthlySeries)
				r.Get("/chart", analyticsHandler.Chart)
				r.Get("/sparkline", analyticsHandler.Sparkline)

				r.Get("/goal", goalHandler.Goals)
				r.Post("/goal", goalHandler.CreateGoal)

				r.Get("/journal", journalHandler.JournalEntries)
				r.Post("/journal", journalHandler.CreateJournalEntry)
			})
		})

		r.Route("/wallet/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", walletHandler.UpdateWallet)
			r.Delete("/", walletHandler.DeleteWallet)
		})

		r.Route("/snapshot/daily/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Patch("/", snapshotHandler.UpdateDailySnapshot)
			r.Delete("/", snapshotHandler.DeleteDailySnapshot)
		})

		r.Route("/snapshot/monthly/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Patch("/", snapshotHandler.UpdateMonthlySnapshot)
			r.Delete("/", snapshotHandler.DeleteMonthlySnapshot)
		})

		r.Route("/goal/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", goalHandler.UpdateGoal)
			r.Post("/complete", goalHandler.CompleteGoal)
			r.Delete("/", goalHandler.DeleteGoal)
		})

		r.Route("/journal/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", journalHandler.UpdateJournalEntry)
			r.Delete("/", journalHandler.DeleteJournalEntry)
		})

		r.Route("/event", func(r chi.Router) {
			r.Get("/", eventHandler.MarketEvents)
			r.Post("/", eventHandler.CreateMarketEvent)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", eventHandler.UpdateMarketEvent)
				r.Delete("/", eventHandler.DeleteMarketEvent)
			})
		})

		r.Post("/import/rows", backupHandler.ImportRows)
		r.Post("/import/backup", backupHandler.ImportBackup)
		r.Get("/export", backupHandler.Export)
	})

	return r
}
