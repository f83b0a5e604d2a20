// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scheduler wires up the cron jobs that drive the continuous
// pipeline: periodic scraping, hourly alert delivery and nightly cleanup of
// expired postings.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"chakri-scan/internal/alerts"
	"chakri-scan/internal/cache"
	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/job"
	"chakri-scan/internal/parser"
	"chakri-scan/internal/scrapers"
	"chakri-scan/internal/store"
)

// Options configures the scheduled pipeline.
type Options struct {
	IntervalHours   int
	Workers         int
	MinQualityScore float64
	KeepLowQuality  bool
	SavedSearches   []alerts.SavedSearch
}

// Scheduler wraps robfig/cron and manages the scrape/alert/cleanup loop.
type Scheduler struct {
	cron     *cron.Cron
	manager  *scrapers.Manager
	parser   *parser.Parser
	store    *store.Store
	cache    *cache.Cache
	notifier *alerts.TelegramNotifier
	opts     Options

	mu      sync.Mutex
	pending []job.CanonicalJob
}

// New creates a scheduler. cache and notifier may be nil when Redis or
// Telegram are not configured.
func New(manager *scrapers.Manager, p *parser.Parser, st *store.Store, c *cache.Cache, notifier *alerts.TelegramNotifier, opts Options) *Scheduler {
	if opts.IntervalHours < 1 {
		opts.IntervalHours = 6
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		manager:  manager,
		parser:   p,
		store:    st,
		cache:    c,
		notifier: notifier,
		opts:     opts,
	}
}

// Start registers the cron jobs and starts the scheduler. One scrape cycle
// runs immediately so the feed is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	scrapeSpec := fmt.Sprintf("@every %dh", s.opts.IntervalHours)
	if _, err := s.cron.AddFunc(scrapeSpec, func() { s.RunScrape(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc scrape: %w", err)
	}
	if _, err := s.cron.AddFunc("@hourly", func() { s.deliverAlerts() }); err != nil {
		return fmt.Errorf("cron.AddFunc alerts: %w", err)
	}
	if _, err := s.cron.AddFunc("0 2 * * *", func() { s.runCleanup(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc cleanup: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] cron started, scrape spec: %s", scrapeSpec)

	// Run immediately on startup (non-blocking)
	go s.RunScrape(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] cron stopped")
}

// RunScrape executes one full scrape-parse-clean-persist cycle.
func (s *Scheduler) RunScrape(ctx context.Context) {
	log.Println("[scheduler] scrape cycle started")

	records := s.manager.ScrapeAll(ctx)
	if len(records) == 0 {
		log.Println("[scheduler] no records scraped")
		return
	}

	parsed, errs := s.parser.ParseAll(records, s.opts.Workers)
	var valid []job.CanonicalJob
	for i, err := range errs {
		if err != nil {
			log.Printf("[scheduler] record rejected: %v", err)
			continue
		}
		valid = append(valid, parsed[i])
	}

	scored, report := s.parser.Cleaner().CleanBatch(valid, cleaner.BatchOptions{
		MinQualityScore: s.opts.MinQualityScore,
		KeepLowQuality:  s.opts.KeepLowQuality,
	})
	log.Printf("[scheduler] cleaned %d/%d records (avg quality %.1f)",
		report.CleanedCount, report.OriginalCount, report.AverageQuality)

	inserted, updated, err := s.store.UpsertJobs(ctx, scored)
	if err != nil {
		log.Printf("[scheduler] upsert: %v", err)
		s.reportError(err)
	}
	log.Printf("[scheduler] persisted %d new, %d refreshed", len(inserted), updated)

	if s.cache != nil && (len(inserted) > 0 || updated > 0) {
		if err := s.cache.InvalidatePrefix(ctx, "jobs:"); err != nil {
			log.Printf("[scheduler] cache invalidate: %v", err)
		}
	}

	s.enqueueAlerts(inserted)
}

// enqueueAlerts queues freshly inserted jobs for the next alert delivery.
// Without a notifier nothing ever drains the queue, so do not feed it.
func (s *Scheduler) enqueueAlerts(inserted []job.CanonicalJob) {
	if s.notifier == nil || len(inserted) == 0 {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, inserted...)
	s.mu.Unlock()
}

// deliverAlerts drains the pending queue and pushes matching jobs to
// Telegram.
func (s *Scheduler) deliverAlerts() {
	if s.notifier == nil {
		return
	}

	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	matched := alerts.FilterMatching(pending, s.opts.SavedSearches)
	if len(matched) == 0 {
		return
	}

	if err := s.notifier.SendDigest(matched, time.Now()); err != nil {
		log.Printf("[scheduler] telegram digest: %v", err)
	}
}

// runCleanup deactivates expired and stale postings.
func (s *Scheduler) runCleanup(ctx context.Context) {
	n, err := s.store.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[scheduler] cleanup: %v", err)
		s.reportError(err)
		return
	}
	if n > 0 {
		log.Printf("[scheduler] deactivated %d expired postings", n)
		if s.cache != nil {
			if err := s.cache.InvalidatePrefix(ctx, "jobs:"); err != nil {
				log.Printf("[scheduler] cache invalidate: %v", err)
			}
		}
	}
}

func (s *Scheduler) reportError(err error) {
	if s.notifier == nil {
		return
	}
	if sendErr := s.notifier.SendError(err); sendErr != nil {
		log.Printf("[scheduler] telegram error report: %v", sendErr)
	}
}
