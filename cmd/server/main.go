package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/prices"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/secrets"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store/local"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store/remote"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the storage backend selected by STORAGE_MODE. Services and
	// handlers only ever see the store interfaces.
	var snapshots store.SnapshotStore
	var entities store.EntityStore
	var localStore *local.Store
	var db *sql.DB

	switch cfg.Storage.Mode {
	case identity.ModeLocal:
		db, err = database.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Printf("Connected to database: %s", cfg.Storage.Path)

		localStore = local.New(db)
		snapshots = localStore
		entities = localStore

	case identity.ModeRemote:
		if err := database.MigratePostgres(cfg.Storage.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		pool, err := database.NewPostgresPool(context.Background(), cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		log.Println("Connected to remote database")

		remoteStore := remote.New(pool)
		snapshots = remoteStore
		entities = remoteStore
	}

	// Reference price feed, cached in Redis when configured
	var priceCache prices.Cache = prices.NewMemoryCache()
	if cfg.Prices.RedisAddr != "" {
		priceCache = prices.NewRedisCache(redis.NewClient(&redis.Options{
			Addr:     cfg.Prices.RedisAddr,
			Password: cfg.Prices.RedisPassword,
		}))
	}
	priceFeed := prices.NewFeed(cfg.Prices.FeedURL, priceCache)

	var encryptor *secrets.Encryptor
	if cfg.FernetKey != "" {
		encryptor, err = secrets.NewEncryptor(cfg.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize encryption: %v", err)
		}
	}

	// Create services
	systemService := service.NewSystemService(db, priceFeed, localStore, encryptor)
	portfolioService := service.NewPortfolioService(entities)
	walletService := service.NewWalletService(entities)
	snapshotService := service.NewSnapshotService(snapshots, entities)
	analyticsService := service.NewAnalyticsService(snapshots, entities)
	goalService := service.NewGoalService(entities)
	journalService := service.NewJournalService(entities)
	eventService := service.NewEventService(entities)
	backupService := service.NewBackupService(snapshots, entities, snapshotService)

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Portfolio: portfolioService,
		Wallet:    walletService,
		Snapshot:  snapshotService,
		Analytics: analyticsService,
		Goal:      goalService,
		Journal:   journalService,
		Event:     eventService,
		Backup:    backupService,
	}, cfg)

	// Warm the price cache on a schedule
	var sched *scheduler.Scheduler
	if cfg.Prices.RefreshSchedule != "" {
		sched = scheduler.New(priceFeed)
		if err := sched.Start(cfg.Prices.RefreshSchedule); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s (%s mode)", cfg.Server.Addr, cfg.Storage.Mode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
