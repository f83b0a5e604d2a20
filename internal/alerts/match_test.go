// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chakri-scan/internal/job"
)

func TestSavedSearchMatches(t *testing.T) {
	j := job.CanonicalJob{
		Title:      "Senior Network Engineer",
		Department: "Information and Communication Technology Division",
		Location:   "Dhaka",
		Skills:     []string{"Python", "Networking"},
	}

	tests := []struct {
		name    string
		search  SavedSearch
		matches bool
	}{
		{"empty search matches everything", SavedSearch{}, true},
		{"keyword in title", SavedSearch{Keywords: []string{"engineer"}}, true},
		{"keyword in skills", SavedSearch{Keywords: []string{"python"}}, true},
		{"keyword case-insensitive", SavedSearch{Keywords: []string{"NETWORK"}}, true},
		{"keyword absent", SavedSearch{Keywords: []string{"doctor"}}, false},
		{"department substring", SavedSearch{Departments: []string{"communication technology"}}, true},
		{"department mismatch", SavedSearch{Departments: []string{"finance"}}, false},
		{"location match", SavedSearch{Locations: []string{"dhaka"}}, true},
		{"location mismatch", SavedSearch{Locations: []string{"sylhet"}}, false},
		{
			"all criteria must hold",
			SavedSearch{Keywords: []string{"engineer"}, Locations: []string{"sylhet"}},
			false,
		},
		{
			"combined match",
			SavedSearch{Keywords: []string{"python"}, Departments: []string{"technology"}, Locations: []string{"dhaka"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.search.Matches(j))
		})
	}
}

func TestFilterMatching(t *testing.T) {
	jobs := []job.CanonicalJob{
		{Title: "Network Engineer", Department: "ICT Division", Location: "Dhaka"},
		{Title: "Accountant", Department: "Ministry of Finance", Location: "Sylhet"},
		{Title: "Medical Officer", Department: "Directorate General of Health Services", Location: "Dhaka"},
	}

	// No searches configured: everything passes through.
	assert.Len(t, FilterMatching(jobs, nil), len(jobs))

	searches := []SavedSearch{
		{Keywords: []string{"engineer"}},
		{Departments: []string{"health"}},
	}
	got := FilterMatching(jobs, searches)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "Network Engineer", got[0].Title)
		assert.Equal(t, "Medical Officer", got[1].Title)
	}

	// A job matching several searches appears once.
	both := []SavedSearch{{Keywords: []string{"engineer"}}, {Locations: []string{"dhaka"}}}
	assert.Len(t, FilterMatching(jobs[:1], both), 1)
}
