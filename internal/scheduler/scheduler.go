package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"btc-mining-sim/internal/observability"

	"github.com/robfig/cron/v3"
)

// PriceFetcher returns the current BTC/USD spot price.
type PriceFetcher interface {
	SpotPrice(ctx context.Context) (float64, error)
}

// PriceFeed holds the latest live BTC price. Safe for concurrent use.
type PriceFeed struct {
	mu        sync.RWMutex
	price     float64
	updatedAt time.Time
	lastErr   error
}

// Latest returns the last good price and when it was fetched.
// ok is false until the first successful refresh.
func (f *PriceFeed) Latest() (price float64, updatedAt time.Time, ok bool) {
	if f == nil {
		return 0, time.Time{}, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.price, f.updatedAt, f.price > 0
}

// LastError is the error of the most recent refresh, nil after a success.
func (f *PriceFeed) LastError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

func (f *PriceFeed) Set(price float64, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.price = price
	f.updatedAt = at
	f.lastErr = nil
}

func (f *PriceFeed) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastErr = err
}

// Scheduler refreshes the price feed on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Fetcher PriceFetcher
	Feed    *PriceFeed
	Metrics *observability.Metrics
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler. Schedules use standard five-field
// cron syntax or descriptors like "@every 10m".
func NewScheduler(ctx context.Context, fetcher PriceFetcher, feed *PriceFeed, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(),
		Fetcher: fetcher,
		Feed:    feed,
		Metrics: metrics,
		Ctx:     ctx,
	}
}

// Register adds the price refresh job.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register price refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[Scheduler] started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[Scheduler] stopped")
}

// RefreshNow fetches the price immediately (startup warm-up / manual trigger).
func (s *Scheduler) RefreshNow() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	price, err := s.Fetcher.SpotPrice(ctx)
	s.Metrics.RecordPriceFetch(price, time.Since(start), err)
	if err != nil {
		s.Feed.fail(err)
		return err
	}
	s.Feed.Set(price, time.Now())
	log.Printf("[Scheduler] BTC price refreshed: %.2f", price)
	return nil
}

func (s *Scheduler) refreshTask() {
	if err := s.RefreshNow(); err != nil {
		log.Printf("[Scheduler] price refresh failed: %v", err)
	}
}
