// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package alerts

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"chakri-scan/internal/job"
)

// SavedSearch is a subscriber's standing query. Empty fields match anything.
type SavedSearch struct {
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Departments []string `yaml:"departments" json:"departments"`
	Locations   []string `yaml:"locations" json:"locations"`
}

// Matches reports whether the job satisfies the saved search. Keywords match
// against title and skills; departments and locations match their fields as
// case-insensitive substrings.
func (s SavedSearch) Matches(j job.CanonicalJob) bool {
	if len(s.Keywords) > 0 && !s.matchesKeywords(j) {
		return false
	}
	if len(s.Departments) > 0 && !containsAny(j.Department, s.Departments) {
		return false
	}
	if len(s.Locations) > 0 && !containsAny(j.Location, s.Locations) {
		return false
	}
	return true
}

func (s SavedSearch) matchesKeywords(j job.CanonicalJob) bool {
	haystack := mapset.NewSet[string]()
	for _, w := range strings.Fields(strings.ToLower(j.Title)) {
		haystack.Add(w)
	}
	for _, skill := range j.Skills {
		for _, w := range strings.Fields(strings.ToLower(skill)) {
			haystack.Add(w)
		}
	}

	for _, kw := range s.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if haystack.Contains(kw) || strings.Contains(strings.ToLower(j.Title), kw) {
			return true
		}
	}
	return false
}

func containsAny(field string, wanted []string) bool {
	field = strings.ToLower(field)
	for _, w := range wanted {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && strings.Contains(field, w) {
			return true
		}
	}
	return false
}

// FilterMatching returns the jobs matching any of the saved searches. With no
// searches configured, every job matches.
func FilterMatching(jobs []job.CanonicalJob, searches []SavedSearch) []job.CanonicalJob {
	if len(searches) == 0 {
		return jobs
	}

	var matched []job.CanonicalJob
	for _, j := range jobs {
		for _, s := range searches {
			if s.Matches(j) {
				matched = append(matched, j)
				break
			}
		}
	}
	return matched
}
