// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cleaner

import (
	"errors"
	"testing"
	"time"

	"chakri-scan/internal/job"
)

func TestCleanTitle(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"abbreviations expanded", "ASST MGR", "Assistant Manager"},
		{"boilerplate stripped", "post of sr officer recruitment", "Senior Officer"},
		{"circular stripped", "Job of Data Entry Operator circular", "Data Entry Operator"},
		{"markup stripped", "<b>Officer</b>", "Officer"},
		{"stop words stay lower", "head of mission", "Head of Mission"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanTitle(tt.input); got != tt.expected {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDepartment(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"abbreviation resolved", "ICT Division", "Information and Communication Technology Division"},
		{"abbreviation inside text", "Under RHD supervision", "Roads and Highways Department"},
		{"government prefix stripped", "Government of Bangladesh Ministry of Finance", "Ministry of Finance"},
		{"unknown department title-cased", "ministry of public administration", "Ministry of Public Administration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.NormalizeDepartment(tt.input); got != tt.expected {
				t.Errorf("NormalizeDepartment(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"city alias wins over noise", "Dhaka District, Bangladesh", "Dhaka"},
		{"spelling variant", "Chattogram", "Chittagong"},
		{"apostrophe variant", "Cox's Bazar", "Cox's Bazar"},
		{"suffix stripped", "Gazipur District", "Gazipur"},
		{"country name stripped", "Tangail, Bangladesh", "Tangail,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.NormalizeLocation(tt.input); got != tt.expected {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanSalary(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"range with currency", "22,000 - 53,870 Taka", "22000-53870 BDT"},
		{"single value", "Tk 25000 per month", "25000 BDT"},
		{"pay scale range", "pay scale: 16,000 - 38,640", "16000-38640 BDT"},
		{"grade number", "Grade 9", "9 BDT"},
		{"bengali digits", "২২,০০০ টাকা", "22000 BDT"},
		{"non-numeric passthrough", "Negotiable", "Negotiable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanSalary(tt.input); got != tt.expected {
				t.Errorf("CleanSalary(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanSkills(t *testing.T) {
	c := New()

	got := c.CleanSkills([]string{"ms office", "MS Office", "Python", "a", "go", "mysql"})
	expected := []string{"Microsoft Office", "MySQL", "Python"}

	if len(got) != len(expected) {
		t.Fatalf("CleanSkills returned %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("CleanSkills[%d] = %q, want %q", i, got[i], expected[i])
		}
	}

	if got := c.CleanSkills(nil); got != nil {
		t.Errorf("CleanSkills(nil) = %v, want nil", got)
	}
}

func TestCleanNumeric(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		kind     NumericKind
		expected int
	}{
		{"embedded number", "15 posts", KindVacancies, 15},
		{"bengali digits", "৫০ জন", KindVacancies, 50},
		{"out of domain vacancies", "12000 posts", KindVacancies, 0},
		{"out of domain age", "age 80", KindAge, 0},
		{"no number", "several posts", KindGeneric, 0},
		{"empty", "", KindGeneric, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanNumeric(tt.input, tt.kind); got != tt.expected {
				t.Errorf("CleanNumeric(%q, %d) = %d, want %d", tt.input, tt.kind, got, tt.expected)
			}
		})
	}
}

func TestValidateNumeric(t *testing.T) {
	c := New()

	tests := []struct {
		n        int
		kind     NumericKind
		expected int
	}{
		{1, KindVacancies, 1},
		{10000, KindVacancies, 10000},
		{10001, KindVacancies, 0},
		{0, KindVacancies, 0},
		{15, KindAge, 15},
		{70, KindAge, 70},
		{14, KindAge, 0},
		{71, KindAge, 0},
		{7, KindGeneric, 7},
		{-2, KindGeneric, 0},
	}

	for _, tt := range tests {
		if got := c.ValidateNumeric(tt.n, tt.kind); got != tt.expected {
			t.Errorf("ValidateNumeric(%d, %d) = %d, want %d", tt.n, tt.kind, got, tt.expected)
		}
	}
}

func TestCleanURL(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"scheme preserved", "https://bdjobs.com/job/123", "https://bdjobs.com/job/123"},
		{"scheme defaulted", "www.gov.bd/jobs", "https://www.gov.bd/jobs"},
		{"surrounding space trimmed", "  http://teletalk.com.bd  ", "http://teletalk.com.bd"},
		{"not a url", "apply at the office", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanURL(tt.input); got != tt.expected {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	c := New()
	c.now = func() time.Time { return date(2026, 3, 1) }

	tests := []struct {
		name  string
		input *time.Time
		valid bool
	}{
		{"nil", nil, false},
		{"near future", timePtr(date(2026, 6, 1)), true},
		{"recent past", timePtr(date(2025, 12, 1)), true},
		{"too far past", timePtr(date(2025, 2, 1)), false},
		{"too far future", timePtr(date(2028, 6, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ValidateDate(tt.input)
			if tt.valid && got == nil {
				t.Errorf("ValidateDate dropped plausible date %v", tt.input)
			}
			if !tt.valid && got != nil {
				t.Errorf("ValidateDate kept implausible date %v", got)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"repeated words collapsed", "apply apply now now now", "apply now"},
		{"markup stripped", "<p>Apply <b>online</b></p>", "Apply online"},
		{"distinct repetition kept", "day to day duties", "day to day duties"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanDescription(tt.input); got != tt.expected {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateRecord(t *testing.T) {
	c := New()

	valid := job.CanonicalJob{Title: "Officer", Department: "ICT Division", Location: "Dhaka"}
	if err := c.ValidateRecord(valid); err != nil {
		t.Errorf("ValidateRecord(valid) = %v, want nil", err)
	}

	missing := []struct {
		name string
		j    job.CanonicalJob
	}{
		{"missing title", job.CanonicalJob{Department: "ICT Division", Location: "Dhaka"}},
		{"missing department", job.CanonicalJob{Title: "Officer", Location: "Dhaka"}},
		{"missing location", job.CanonicalJob{Title: "Officer", Department: "ICT Division"}},
		{"whitespace title", job.CanonicalJob{Title: "   ", Department: "ICT Division", Location: "Dhaka"}},
	}
	for _, tt := range missing {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ValidateRecord(tt.j)
			if !errors.Is(err, job.ErrMissingRequiredField) {
				t.Errorf("ValidateRecord = %v, want ErrMissingRequiredField", err)
			}
		})
	}

	// Malformed values never escalate to record level; only the required
	// fields do.
	inverted := valid
	inverted.AgeMin = job.IntPtr(40)
	inverted.AgeMax = job.IntPtr(30)
	if err := c.ValidateRecord(inverted); err != nil {
		t.Errorf("ValidateRecord rejected record over a malformed age range: %v", err)
	}
}

func TestDedupKey(t *testing.T) {
	c := New()

	a := c.DedupKey("Sr Officer", "ICT Division", "Dhaka")
	b := c.DedupKey("  sr   officer  ", "ict division", "dhaka city")
	if a != b {
		t.Errorf("case/whitespace variants produced different keys: %q vs %q", a, b)
	}

	other := c.DedupKey("Sr Officer", "ICT Division", "Sylhet")
	if a == other {
		t.Errorf("different locations produced the same key %q", a)
	}

	partial := c.DedupKey("Officer", "", "")
	if partial != "officer" {
		t.Errorf("DedupKey with empty parts = %q, want %q", partial, "officer")
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }
