// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package job

import "time"

// RawRecord is a loosely-typed job posting as produced by a scraper.
// Every field is optional free text; nothing is guaranteed present,
// well-formed, or even in the right field.
type RawRecord struct {
	Title           string `json:"title,omitempty"`
	Department      string `json:"department,omitempty"`
	Location        string `json:"location,omitempty"`
	Salary          string `json:"salary,omitempty"`
	Vacancies       string `json:"vacancies,omitempty"`
	Age             string `json:"age,omitempty"`
	Experience      string `json:"experience,omitempty"`
	Grade           string `json:"grade,omitempty"`
	Description     string `json:"description,omitempty"`
	Requirements    string `json:"requirements,omitempty"`
	Education       string `json:"education,omitempty"`
	PostingDate     string `json:"posting_date,omitempty"`
	DeadlineDate    string `json:"deadline_date,omitempty"`
	ApplicationLink string `json:"application_link,omitempty"`
	SourceURL       string `json:"source_url,omitempty"`
	SourceSite      string `json:"source_site,omitempty"`
}

// CanonicalJob is the validated, normalized posting entity produced by the
// parser. It is immutable output: lifecycle fields (active flag, timestamps)
// belong to the store, not to the pipeline.
type CanonicalJob struct {
	ID         string `json:"job_id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`

	Grade     string `json:"grade,omitempty"`
	Salary    string `json:"salary,omitempty"`
	Vacancies int    `json:"vacancies,omitempty"`

	// Eligibility
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	AgeMin     *int   `json:"age_min,omitempty"`
	AgeMax     *int   `json:"age_max,omitempty"`

	Skills      []string `json:"skills,omitempty"`
	Description string   `json:"description,omitempty"`

	PostingDate  *time.Time `json:"posting_date,omitempty"`
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`

	ApplicationLink string `json:"application_link,omitempty"`
	SourceURL       string `json:"source_url,omitempty"`
	SourceSite      string `json:"source_site,omitempty"`
}

// ScoredJob pairs a job with its data-quality score during batch cleaning.
// The score is ephemeral: it decides admission into a cleaned batch and is
// never persisted on the entity itself.
type ScoredJob struct {
	Job          CanonicalJob
	QualityScore float64
}

// IntPtr is a convenience helper for optional numeric fields.
func IntPtr(v int) *int { return &v }
