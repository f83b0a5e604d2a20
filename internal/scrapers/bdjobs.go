// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"context"
	"log"

	"chakri-scan/internal/job"
)

const bdjobsMaxDetails = 25

// BDJobsScraper scrapes the commercial bdjobs.com listing for government
// category postings.
type BDJobsScraper struct {
	fetcher *Fetcher
	jobsURL string
}

// NewBDJobsScraper creates a scraper for bdjobs.com.
func NewBDJobsScraper(fetcher *Fetcher) *BDJobsScraper {
	return &BDJobsScraper{
		fetcher: fetcher,
		jobsURL: "https://bdjobs.com/jobsearch.asp?fcatId=8",
	}
}

func (s *BDJobsScraper) Name() string { return "bdjobs" }

func (s *BDJobsScraper) Scrape(ctx context.Context) ([]job.RawRecord, error) {
	body, err := s.fetcher.Fetch(ctx, s.jobsURL)
	if err != nil {
		return nil, err
	}

	root, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	links := collectLinks(root, "jobdetail")
	if len(links) > bdjobsMaxDetails {
		links = links[:bdjobsMaxDetails]
	}

	var records []job.RawRecord
	for _, l := range links {
		record, err := s.scrapeDetail(ctx, l.URL, l.Title)
		if err != nil {
			log.Printf("[bdjobs] detail page %s: %v", l.URL, err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *BDJobsScraper) scrapeDetail(ctx context.Context, detailURL, linkTitle string) (job.RawRecord, error) {
	body, err := s.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return job.RawRecord{}, err
	}

	root, err := parseHTML(body)
	if err != nil {
		return job.RawRecord{}, err
	}

	record := job.RawRecord{
		Title:           selectText(root, "h1", ".job-title"),
		Department:      selectText(root, ".company-name", ".organization"),
		Location:        selectText(root, ".job-location", ".location"),
		Salary:          selectText(root, ".salary", ".salary-range"),
		Vacancies:       selectText(root, ".vacancies"),
		Experience:      selectText(root, ".experience"),
		Education:       selectText(root, ".education", ".educational-requirements"),
		Description:     selectText(root, ".job-description", ".job-content"),
		Requirements:    selectText(root, ".requirements", ".additional-requirements"),
		DeadlineDate:    selectText(root, ".deadline", ".application-deadline"),
		PostingDate:     selectText(root, ".published-on", ".posting-date"),
		ApplicationLink: detailURL,
		SourceURL:       detailURL,
		SourceSite:      "bdjobs.com",
	}
	if record.Title == "" {
		record.Title = linkTitle
	}

	return record, nil
}
