// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parser turns loosely-typed scraped records into validated
// CanonicalJob entities. It orchestrates the normalization, extraction and
// cleaning stages; it holds no mutable state after construction, so a single
// Parser may be shared across goroutines.
package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/extractor"
	"chakri-scan/internal/job"
	"chakri-scan/internal/observability"
	"chakri-scan/internal/textnorm"
)

// Parser converts RawRecords into CanonicalJobs.
type Parser struct {
	extractor *extractor.Extractor
	cleaner   *cleaner.Cleaner
	observer  *observability.StandardObserver
}

// New creates a parser with freshly compiled extraction and cleaning tables.
func New() *Parser {
	return &Parser{
		extractor: extractor.New(),
		cleaner:   cleaner.New(),
	}
}

// SetObserver attaches the pipeline observer to the parser and its cleaner.
func (p *Parser) SetObserver(observer *observability.StandardObserver) {
	p.observer = observer
	p.cleaner.SetObserver(observer)
}

// Cleaner exposes the parser's cleaner so callers can run batch-level
// scoring and dedup with the same tables that produced the jobs.
func (p *Parser) Cleaner() *cleaner.Cleaner {
	return p.cleaner
}

// Parse transforms one raw record into a canonical job. It fails with
// job.ErrMissingRequiredField when title, department or location are empty
// after cleaning; any panic inside the stages is recovered and returned as a
// per-record error so one malformed record cannot take down a batch.
func (p *Parser) Parse(raw job.RawRecord) (j job.CanonicalJob, err error) {
	defer func() {
		if r := recover(); r != nil {
			j = job.CanonicalJob{}
			err = fmt.Errorf("parse record %q: %v", raw.Title, r)
		}
	}()

	title := p.cleaner.CleanTitle(textnorm.Normalize(raw.Title))
	department := p.cleaner.NormalizeDepartment(textnorm.Normalize(raw.Department))
	location := p.cleaner.NormalizeLocation(textnorm.Normalize(raw.Location))

	j = job.CanonicalJob{
		Title:      title,
		Department: department,
		Location:   location,
		SourceSite: strings.TrimSpace(raw.SourceSite),
	}

	// Extraction works over every free-text field the scraper captured;
	// requirements blocks routinely carry the salary, age and skill facts
	// that the structured fields miss.
	description := textnorm.Normalize(raw.Description)
	requirements := textnorm.Normalize(raw.Requirements)
	searchText := strings.TrimSpace(description + " " + requirements)

	j.Salary = p.salary(raw.Salary, searchText)
	j.Vacancies = p.vacancies(raw.Vacancies, searchText)
	j.AgeMin, j.AgeMax = p.ageRange(raw.Age, searchText)
	j.Experience = p.firstOf(raw.Experience, searchText, p.extractor.Experience)
	j.Education = p.firstOf(raw.Education, searchText, p.extractor.Education)
	j.Grade = p.grade(raw.Grade, searchText)
	j.Skills = p.cleaner.CleanSkills(p.extractor.Skills(searchText))
	j.Description = p.cleaner.CleanDescription(description)

	j.PostingDate = p.date(raw.PostingDate)
	j.DeadlineDate = p.date(raw.DeadlineDate)

	j.ApplicationLink = p.cleaner.CleanURL(raw.ApplicationLink)
	j.SourceURL = p.cleaner.CleanURL(raw.SourceURL)

	if err := p.cleaner.ValidateRecord(j); err != nil {
		return job.CanonicalJob{}, err
	}

	j.ID = p.Fingerprint(j.Title, j.Department, j.Location)
	return j, nil
}

// ParseAll parses records concurrently on a bounded worker pool, preserving
// input order in the results so downstream dedup stays deterministic. The
// error slice is index-aligned with records; a nil entry means success and
// the job at the same index is valid.
func (p *Parser) ParseAll(records []job.RawRecord, workers int) ([]job.CanonicalJob, []error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) {
		workers = len(records)
	}

	jobs := make([]job.CanonicalJob, len(records))
	errs := make([]error, len(records))
	if len(records) == 0 {
		return jobs, errs
	}

	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("parser", "parse_all", "")
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				jobs[i], errs[i] = p.Parse(records[i])
			}
		}()
	}
	for i := range records {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if finishTiming != nil {
		failed := 0
		for _, err := range errs {
			if err != nil {
				failed++
			}
		}
		finishTiming(failed == 0, map[string]interface{}{
			"records": len(records),
			"failed":  failed,
		})
	}

	return jobs, errs
}

// Fingerprint derives the stable job identity from the cleaned identity
// fields. It hashes the same case-folded key the batch dedup uses, so two
// records that dedup together always share an ID.
func (p *Parser) Fingerprint(title, department, location string) string {
	key := p.cleaner.DedupKey(title, department, location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

func (p *Parser) salary(raw, searchText string) string {
	text := textnorm.Normalize(raw)
	if text == "" {
		text = p.extractor.Salary(searchText)
	}
	return p.cleaner.CleanSalary(text)
}

func (p *Parser) vacancies(raw, searchText string) int {
	if text := textnorm.Normalize(raw); text != "" {
		if n := p.cleaner.CleanNumeric(text, cleaner.KindVacancies); n > 0 {
			return p.cleaner.ValidateNumeric(n, cleaner.KindVacancies)
		}
	}
	return p.cleaner.ValidateNumeric(p.extractor.Vacancies(searchText), cleaner.KindVacancies)
}

func (p *Parser) ageRange(raw, searchText string) (*int, *int) {
	min, max := p.extractor.AgeRange(textnorm.Normalize(raw))
	if min == nil && max == nil {
		min, max = p.extractor.AgeRange(searchText)
	}
	min, max = p.validAge(min), p.validAge(max)
	// An inverted range is a malformed value, not a broken record; drop the
	// bounds and keep the posting.
	if min != nil && max != nil && *min > *max {
		return nil, nil
	}
	return min, max
}

func (p *Parser) validAge(age *int) *int {
	if age == nil {
		return nil
	}
	if p.cleaner.ValidateNumeric(*age, cleaner.KindAge) == 0 {
		return nil
	}
	return age
}

func (p *Parser) grade(raw, searchText string) string {
	if text := textnorm.Normalize(raw); text != "" {
		return p.cleaner.CleanGrade(text)
	}
	return p.cleaner.CleanGrade(p.extractor.GradeScale(searchText))
}

func (p *Parser) date(raw string) *time.Time {
	return p.cleaner.ValidateDate(p.extractor.Deadline(textnorm.Normalize(raw)))
}

// firstOf prefers the structured field, falling back to extraction from the
// free-text blocks.
func (p *Parser) firstOf(raw, searchText string, extract func(string) string) string {
	if text := textnorm.Normalize(raw); text != "" {
		return text
	}
	return extract(searchText)
}
