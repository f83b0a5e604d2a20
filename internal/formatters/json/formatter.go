// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/formatters"
	"chakri-scan/internal/job"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type scoredEntry struct {
	job.CanonicalJob
	QualityScore float64 `json:"quality_score"`
}

type response struct {
	Jobs    interface{}          `json:"jobs"`
	Summary *cleaner.BatchReport `json:"summary,omitempty"`
}

func (f *Formatter) Format(jobs []job.ScoredJob, report cleaner.BatchReport, options formatters.FormatterOptions) (string, error) {
	resp := response{}

	if options.IncludeScores {
		entries := make([]scoredEntry, 0, len(jobs))
		for _, sj := range jobs {
			entries = append(entries, scoredEntry{CanonicalJob: sj.Job, QualityScore: sj.QualityScore})
		}
		resp.Jobs = entries
	} else {
		plain := make([]job.CanonicalJob, 0, len(jobs))
		for _, sj := range jobs {
			plain = append(plain, sj.Job)
		}
		resp.Jobs = plain
	}

	if options.IncludeReport {
		resp.Summary = &report
	}

	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}

	return string(jsonData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
