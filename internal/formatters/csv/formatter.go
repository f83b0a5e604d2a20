// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/formatters"
	"chakri-scan/internal/job"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(jobs []job.ScoredJob, report cleaner.BatchReport, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	header := []string{
		"job_id", "title", "department", "location", "grade", "salary",
		"vacancies", "education", "experience", "age_min", "age_max",
		"skills", "posting_date", "deadline_date", "application_link",
		"source_url", "source_site",
	}
	if options.IncludeScores {
		header = append(header, "quality_score")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, sj := range jobs {
		j := sj.Job
		row := []string{
			j.ID, j.Title, j.Department, j.Location, j.Grade, j.Salary,
			intField(j.Vacancies), j.Education, j.Experience,
			intPtrField(j.AgeMin), intPtrField(j.AgeMax),
			strings.Join(j.Skills, "; "),
			dateField(j.PostingDate), dateField(j.DeadlineDate),
			j.ApplicationLink, j.SourceURL, j.SourceSite,
		}
		if options.IncludeScores {
			row = append(row, strconv.FormatFloat(sj.QualityScore, 'f', 1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV: %w", err)
	}

	return builder.String(), nil
}

func intField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func intPtrField(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func dateField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
