// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"log"
	"time"

	"chakri-scan/internal/job"
	"chakri-scan/internal/observability"
)

// Scraper is one job source.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]job.RawRecord, error)
}

// Manager runs all configured scrapers and aggregates their records in a
// fixed source order, which keeps downstream dedup deterministic.
type Manager struct {
	scrapers []Scraper
	observer *observability.StandardObserver
}

// NewManager creates a manager for the named sites. Unknown site names are
// logged and skipped.
func NewManager(sites []string, timeout time.Duration, maxRetries int) *Manager {
	fetcher := NewFetcher(timeout, maxRetries)

	m := &Manager{}
	for _, site := range sites {
		switch site {
		case "govbd":
			m.scrapers = append(m.scrapers, NewGovBDScraper(fetcher))
		case "bdjobs":
			m.scrapers = append(m.scrapers, NewBDJobsScraper(fetcher))
		default:
			log.Printf("[scrapers] unknown site %q, skipping", site)
		}
	}
	return m
}

// SetObserver attaches the pipeline observer.
func (m *Manager) SetObserver(observer *observability.StandardObserver) {
	m.observer = observer
}

// Scrapers returns the configured scrapers in run order.
func (m *Manager) Scrapers() []Scraper {
	return m.scrapers
}

// ScrapeAll runs every scraper in order. One failing source never aborts the
// run; its error is logged and the remaining sources still contribute.
func (m *Manager) ScrapeAll(ctx context.Context) []job.RawRecord {
	var all []job.RawRecord

	for _, s := range m.scrapers {
		var finishTiming func(bool, map[string]interface{})
		if m.observer != nil {
			finishTiming = m.observer.StartTiming("scrapers", "scrape", s.Name())
		}

		records, err := s.Scrape(ctx)
		if err != nil {
			log.Printf("[scrapers] %s failed: %v", s.Name(), err)
		} else {
			log.Printf("[scrapers] %s returned %d records", s.Name(), len(records))
			all = append(all, records...)
		}

		if finishTiming != nil {
			finishTiming(err == nil, map[string]interface{}{
				"records": len(records),
			})
		}
	}

	return all
}
