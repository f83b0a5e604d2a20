// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"chakri-scan/internal/job"
)

// govBD default listing cap per run; the portal paginates endlessly and a
// scheduled run only needs the fresh postings at the top.
const govBDMaxDetails = 25

// GovBDScraper scrapes the central government jobs portal.
type GovBDScraper struct {
	fetcher *Fetcher
	baseURL string
	jobsURL string
}

// NewGovBDScraper creates a scraper for the gov.bd jobs portal.
func NewGovBDScraper(fetcher *Fetcher) *GovBDScraper {
	return &GovBDScraper{
		fetcher: fetcher,
		baseURL: "https://www.gov.bd",
		jobsURL: "https://www.gov.bd/jobs",
	}
}

func (s *GovBDScraper) Name() string { return "govbd" }

// Scrape fetches the listing page, follows each job link and harvests the
// detail page into a RawRecord. A failed detail page is logged and skipped;
// only a failed listing page fails the whole run.
func (s *GovBDScraper) Scrape(ctx context.Context) ([]job.RawRecord, error) {
	body, err := s.fetcher.Fetch(ctx, s.jobsURL)
	if err != nil {
		return nil, err
	}

	root, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	links := collectLinks(root, "job")
	if len(links) > govBDMaxDetails {
		links = links[:govBDMaxDetails]
	}

	var records []job.RawRecord
	for _, l := range links {
		detailURL := s.resolve(l.URL)
		record, err := s.scrapeDetail(ctx, detailURL, l.Title)
		if err != nil {
			log.Printf("[govbd] detail page %s: %v", detailURL, err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *GovBDScraper) scrapeDetail(ctx context.Context, detailURL, linkTitle string) (job.RawRecord, error) {
	body, err := s.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return job.RawRecord{}, err
	}

	root, err := parseHTML(body)
	if err != nil {
		return job.RawRecord{}, err
	}

	record := job.RawRecord{
		Title:           selectText(root, "h1", ".job-title", ".title"),
		Department:      selectText(root, ".department", ".organization"),
		Location:        selectText(root, ".location", ".workplace"),
		Salary:          selectText(root, ".salary", ".pay-scale"),
		Vacancies:       selectText(root, ".vacancies", ".posts"),
		Education:       selectText(root, ".education", ".qualification"),
		Description:     selectText(root, ".description", ".job-description", ".details"),
		Requirements:    selectText(root, ".requirements", ".eligibility"),
		DeadlineDate:    selectText(root, ".deadline", ".last-date"),
		PostingDate:     time.Now().Format("2006-01-02"),
		ApplicationLink: s.resolve(selectHref(root, ".apply-link")),
		SourceURL:       detailURL,
		SourceSite:      "gov.bd",
	}
	if record.Title == "" {
		record.Title = linkTitle
	}
	if record.ApplicationLink == "" {
		record.ApplicationLink = detailURL
	}

	return record, nil
}

// resolve makes portal-relative hrefs absolute.
func (s *GovBDScraper) resolve(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
