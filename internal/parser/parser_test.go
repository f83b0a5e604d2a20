// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"chakri-scan/internal/job"
)

func TestParse(t *testing.T) {
	p := New()

	deadline := time.Now().AddDate(0, 1, 0)
	raw := job.RawRecord{
		Title:           "Post of Sr Officer",
		Department:      "ict division",
		Location:        "Dhaka District",
		Salary:          "22,000 - 53,870 Taka",
		Vacancies:       "১৫ জন",
		Age:             "age 25 to 35 years",
		Grade:           "grade 9",
		Education:       "Bachelor degree",
		Description:     "Maintain systems. Must know MS Office and SQL.",
		Requirements:    "Minimum 2 years experience required.",
		DeadlineDate:    deadline.Format("02-01-2006"),
		ApplicationLink: "teletalk.com.bd/apply",
		SourceURL:       "https://www.gov.bd/jobs/1",
		SourceSite:      "gov.bd",
	}

	j, err := p.Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if j.Title != "Senior Officer" {
		t.Errorf("Title = %q, want %q", j.Title, "Senior Officer")
	}
	if j.Department != "Information and Communication Technology Division" {
		t.Errorf("Department = %q", j.Department)
	}
	if j.Location != "Dhaka" {
		t.Errorf("Location = %q, want %q", j.Location, "Dhaka")
	}
	if j.Salary != "22000-53870 BDT" {
		t.Errorf("Salary = %q, want %q", j.Salary, "22000-53870 BDT")
	}
	if j.Vacancies != 15 {
		t.Errorf("Vacancies = %d, want 15", j.Vacancies)
	}
	if j.AgeMin == nil || *j.AgeMin != 25 || j.AgeMax == nil || *j.AgeMax != 35 {
		t.Errorf("age range = %v-%v, want 25-35", j.AgeMin, j.AgeMax)
	}
	if j.Grade != "Grade 9" {
		t.Errorf("Grade = %q, want %q", j.Grade, "Grade 9")
	}
	if j.Education != "Bachelor degree" {
		t.Errorf("Education = %q, want %q", j.Education, "Bachelor degree")
	}
	if j.Experience != "2+ years" {
		t.Errorf("Experience = %q, want %q", j.Experience, "2+ years")
	}

	wantSkills := map[string]bool{"Microsoft Office": true, "Sql": true}
	for _, s := range j.Skills {
		delete(wantSkills, s)
	}
	if len(wantSkills) != 0 {
		t.Errorf("Skills = %v, missing %v", j.Skills, wantSkills)
	}

	if j.DeadlineDate == nil || j.DeadlineDate.Format("2006-01-02") != deadline.Format("2006-01-02") {
		t.Errorf("DeadlineDate = %v, want %s", j.DeadlineDate, deadline.Format("2006-01-02"))
	}
	if j.PostingDate != nil {
		t.Errorf("PostingDate = %v, want nil", j.PostingDate)
	}
	if j.ApplicationLink != "https://teletalk.com.bd/apply" {
		t.Errorf("ApplicationLink = %q", j.ApplicationLink)
	}
	if j.SourceSite != "gov.bd" {
		t.Errorf("SourceSite = %q, want %q", j.SourceSite, "gov.bd")
	}

	if len(j.ID) != 16 {
		t.Errorf("ID = %q, want 16 hex characters", j.ID)
	}
	if j.ID != p.Fingerprint(j.Title, j.Department, j.Location) {
		t.Error("ID does not match the fingerprint of the cleaned identity fields")
	}
}

func TestParseMissingRequired(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		raw  job.RawRecord
	}{
		{"all empty", job.RawRecord{}},
		{"description only", job.RawRecord{Description: "Some posting text"}},
		{"no location", job.RawRecord{Title: "Officer", Department: "ICT Division"}},
		{"markup-only title", job.RawRecord{Title: "<br/>", Department: "ICT Division", Location: "Dhaka"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := p.Parse(tt.raw)
			if !errors.Is(err, job.ErrMissingRequiredField) {
				t.Errorf("Parse = %v, want ErrMissingRequiredField", err)
			}
			if j.ID != "" || j.Title != "" {
				t.Errorf("failed parse returned non-zero job: %+v", j)
			}
		})
	}
}

func TestParseKeepsRecordWithInvertedAgeRange(t *testing.T) {
	p := New()

	j, err := p.Parse(job.RawRecord{
		Title:      "Assistant Engineer",
		Department: "ICT Division",
		Location:   "Dhaka",
		Age:        "35 to 25 years",
	})
	if err != nil {
		t.Fatalf("Parse rejected record over a malformed age range: %v", err)
	}
	if j.AgeMin != nil || j.AgeMax != nil {
		t.Errorf("inverted age bounds not nulled: min=%v max=%v", j.AgeMin, j.AgeMax)
	}
	if j.Title != "Assistant Engineer" || j.ID == "" {
		t.Errorf("record lost its identity: %+v", j)
	}
}

func TestFingerprintStability(t *testing.T) {
	p := New()

	a := p.Fingerprint("Sr Officer", "ICT Division", "Dhaka")
	b := p.Fingerprint("  sr   officer ", "ict division", "dhaka city")
	if a != b {
		t.Errorf("variants of the same posting fingerprint differently: %q vs %q", a, b)
	}

	c := p.Fingerprint("Sr Officer", "ICT Division", "Sylhet")
	if a == c {
		t.Errorf("distinct postings share fingerprint %q", a)
	}

	if len(a) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(a))
	}
}

func TestParseAll(t *testing.T) {
	p := New()

	var records []job.RawRecord
	for i := 0; i < 20; i++ {
		records = append(records, job.RawRecord{
			Title:      fmt.Sprintf("Officer Post %d", i),
			Department: "Ministry of Finance",
			Location:   "Dhaka",
		})
	}
	records[7] = job.RawRecord{Description: "broken record"}

	jobs, errs := p.ParseAll(records, 4)

	if len(jobs) != len(records) || len(errs) != len(records) {
		t.Fatalf("got %d jobs / %d errs, want %d each", len(jobs), len(errs), len(records))
	}
	for i := range records {
		if i == 7 {
			if !errors.Is(errs[i], job.ErrMissingRequiredField) {
				t.Errorf("errs[7] = %v, want ErrMissingRequiredField", errs[7])
			}
			continue
		}
		if errs[i] != nil {
			t.Errorf("errs[%d] = %v, want nil", i, errs[i])
		}
		want := fmt.Sprintf("Officer Post %d", i)
		if jobs[i].Title != want {
			t.Errorf("jobs[%d].Title = %q, want %q (order not preserved)", i, jobs[i].Title, want)
		}
	}
}

func TestParseAllWorkerClamp(t *testing.T) {
	p := New()

	records := []job.RawRecord{{Title: "Officer", Department: "ICT Division", Location: "Dhaka"}}
	jobs, errs := p.ParseAll(records, 0)
	if len(jobs) != 1 || errs[0] != nil {
		t.Fatalf("ParseAll with zero workers: jobs=%d err=%v", len(jobs), errs[0])
	}

	jobs, errs = p.ParseAll(nil, 8)
	if len(jobs) != 0 || len(errs) != 0 {
		t.Errorf("ParseAll(nil) returned %d jobs / %d errs", len(jobs), len(errs))
	}
}
