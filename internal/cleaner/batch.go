// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cleaner

import (
	"log"
	"strings"

	"chakri-scan/internal/job"
)

// BatchOptions controls admission and dedup behavior of CleanBatch.
type BatchOptions struct {
	// MinQualityScore is the admission threshold; DefaultMinQualityScore
	// when zero.
	MinQualityScore float64

	// KeepLowQuality keeps records under the threshold instead of dropping
	// them, leaving the policy decision to downstream consumers. The score
	// travels on the ScoredJob either way.
	KeepLowQuality bool
}

// BatchReport summarizes one CleanBatch run.
type BatchReport struct {
	OriginalCount   int            `json:"original_count"`
	CleanedCount    int            `json:"cleaned_count"`
	RemovedCount    int            `json:"removed_count"`
	InvalidCount    int            `json:"invalid_count"`
	LowQualityCount int            `json:"low_quality_count"`
	DuplicateCount  int            `json:"duplicate_count"`
	AverageQuality  float64        `json:"average_quality_score"`
	Distribution    map[string]int `json:"quality_distribution"`
}

// QualityScore computes the 0-100 completeness heuristic: 40 points across
// the required fields, 30 across description/application link/deadline, 20
// across salary/vacancies/skills/education, plus up to 10 bonus points for
// overall field coverage. It signals completeness, not correctness.
func (c *Cleaner) QualityScore(j job.CanonicalJob) float64 {
	score := 0.0

	required := []bool{present(j.Title), present(j.Department), present(j.Location)}
	for _, ok := range required {
		if ok {
			score += 40.0 / float64(len(required))
		}
	}

	important := []bool{present(j.Description), present(j.ApplicationLink), j.DeadlineDate != nil}
	for _, ok := range important {
		if ok {
			score += 30.0 / float64(len(important))
		}
	}

	additional := []bool{present(j.Salary), j.Vacancies > 0, len(j.Skills) > 0, present(j.Education)}
	for _, ok := range additional {
		if ok {
			score += 20.0 / float64(len(additional))
		}
	}

	populated := 0
	all := []bool{
		present(j.Title), present(j.Department), present(j.Location),
		present(j.Grade), present(j.Salary), j.Vacancies > 0,
		present(j.Education), present(j.Experience),
		j.AgeMin != nil, j.AgeMax != nil,
		len(j.Skills) > 0, present(j.Description),
		j.PostingDate != nil, j.DeadlineDate != nil,
		present(j.ApplicationLink), present(j.SourceURL),
	}
	for _, ok := range all {
		if ok {
			populated++
		}
	}
	score += 10.0 * float64(populated) / float64(len(all))

	if score > 100 {
		score = 100
	}
	return score
}

// CleanBatch validates and scores each job independently (one bad record
// never aborts the batch), filters by quality threshold and deduplicates
// survivors. Dedup is order-stable: the first occurrence of an identity key
// wins regardless of relative quality, so callers that produce records
// concurrently must re-establish a deterministic order first.
func (c *Cleaner) CleanBatch(jobs []job.CanonicalJob, opts BatchOptions) ([]job.ScoredJob, BatchReport) {
	report := BatchReport{
		OriginalCount: len(jobs),
		Distribution:  make(map[string]int),
	}
	if len(jobs) == 0 {
		return nil, report
	}

	var finishTiming func(bool, map[string]interface{})
	if c.observer != nil {
		finishTiming = c.observer.StartTiming("cleaner", "clean_batch", "")
	}

	threshold := opts.MinQualityScore
	if threshold == 0 {
		threshold = DefaultMinQualityScore
	}

	var admitted []job.ScoredJob
	for _, j := range jobs {
		if err := c.ValidateRecord(j); err != nil {
			log.Printf("[cleaner] rejecting record %q: %v", j.Title, err)
			report.InvalidCount++
			continue
		}

		score := c.QualityScore(j)
		if score < threshold && !opts.KeepLowQuality {
			report.LowQualityCount++
			continue
		}
		admitted = append(admitted, job.ScoredJob{Job: j, QualityScore: score})
	}

	unique := c.deduplicate(admitted, &report)

	var total float64
	for _, sj := range unique {
		total += sj.QualityScore
		report.Distribution[qualityBucket(sj.QualityScore)]++
	}
	report.CleanedCount = len(unique)
	report.RemovedCount = report.OriginalCount - len(unique)
	if len(unique) > 0 {
		report.AverageQuality = total / float64(len(unique))
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"original": report.OriginalCount,
			"cleaned":  report.CleanedCount,
		})
	}

	return unique, report
}

// deduplicate keeps the first job per identity key, in input order.
func (c *Cleaner) deduplicate(jobs []job.ScoredJob, report *BatchReport) []job.ScoredJob {
	seen := make(map[string]bool)
	var unique []job.ScoredJob

	for _, sj := range jobs {
		key := c.DedupKey(sj.Job.Title, sj.Job.Department, sj.Job.Location)
		if key == "" || seen[key] {
			report.DuplicateCount++
			continue
		}
		seen[key] = true
		unique = append(unique, sj)
	}

	return unique
}

func qualityBucket(score float64) string {
	switch {
	case score >= 90:
		return "excellent (90-100)"
	case score >= 70:
		return "good (70-89)"
	case score >= 50:
		return "fair (50-69)"
	default:
		return "poor (0-49)"
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
