// Package scheduler runs periodic background jobs outside the engine,
// currently the reference price cache warm-up.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/prices"
)

// Scheduler owns the cron runner and its registered jobs.
type Scheduler struct {
	cron *cron.Cron
	feed *prices.Feed
}

// New creates a scheduler over feed. Jobs are registered by Start.
func New(feed *prices.Feed) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		feed: feed,
	}
}

// Start registers the price refresh job on the given cron expression and
// begins running. An invalid expression is returned without starting.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.refreshPrices)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started, price refresh on %q", schedule)

	// Warm the cache immediately rather than waiting for the first tick.
	go s.refreshPrices()
	return nil
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) refreshPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := s.feed.Refresh(ctx); err != nil {
		log.Printf("Price refresh failed: %v", err)
	}
}
