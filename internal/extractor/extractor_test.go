// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"reflect"
	"testing"
	"time"
)

func TestAgeRange(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		input   string
		wantMin *int
		wantMax *int
	}{
		{"explicit range", "age 25 to 35 years", intp(25), intp(35)},
		{"hyphen range", "25-35", intp(25), intp(35)},
		{"maximum only", "maximum 35 years", nil, intp(35)},
		{"maximum with age prefix", "maximum age: 35", nil, intp(35)},
		{"minimum only", "minimum 18", intp(18), nil},
		{"bare age pins both bounds", "30 years", intp(30), intp(30)},
		{"bengali digits", "২৫ to ৩৫", intp(25), intp(35)},
		{"no age", "experienced candidates preferred", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := e.AgeRange(tt.input)
			if !eqIntPtr(min, tt.wantMin) || !eqIntPtr(max, tt.wantMax) {
				t.Errorf("AgeRange(%q) = (%s, %s), want (%s, %s)",
					tt.input, fmtIntPtr(min), fmtIntPtr(max), fmtIntPtr(tt.wantMin), fmtIntPtr(tt.wantMax))
			}
		})
	}
}

func TestDeadline(t *testing.T) {
	e := New()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"day-month-year", "apply by 15-01-2026", date(2026, 1, 15)},
		{"slash separators", "15/01/2026", date(2026, 1, 15)},
		{"iso order", "2026-01-15", date(2026, 1, 15)},
		{"day month-name year", "deadline 15 january 2026", date(2026, 1, 15)},
		{"month-name day year", "january 15, 2026", date(2026, 1, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Deadline(tt.input)
			if got == nil {
				t.Fatalf("Deadline(%q) = nil, want %v", tt.input, tt.want)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Deadline(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeadlineRejectsGarbage(t *testing.T) {
	e := New()

	for _, input := range []string{
		"",
		"invalid date",
		"apply soon",
		"32-01-2026",
		"15-13-2026",
	} {
		if got := e.Deadline(input); got != nil {
			t.Errorf("Deadline(%q) = %v, want nil", input, got)
		}
	}
}

func TestVacancies(t *testing.T) {
	e := New()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"posts suffix", "15 posts available", 15},
		{"vacancies prefix", "vacancies: 8", 8},
		{"bengali count", "১৫ জন", 15},
		{"persons suffix", "5 persons", 5},
		{"bare number near vacancy wording", "total vacancy 12 for this circular", 12},
		{"bare number without context ignored", "established in 1985", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Vacancies(tt.input); got != tt.want {
				t.Errorf("Vacancies(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestExperience(t *testing.T) {
	e := New()

	tests := []struct {
		input string
		want  string
	}{
		{"3 to 5 years experience required", "3-5 years"},
		{"minimum 2 years experience", "2+ years"},
		{"5+ years experience", "5+ years"},
		{"fresh graduates are encouraged", "Fresh Graduate"},
		{"entry level position", "Fresh Graduate"},
		{"no mention here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := e.Experience(tt.input); got != tt.want {
			t.Errorf("Experience(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSalary(t *testing.T) {
	e := New()

	tests := []struct {
		input string
		want  string
	}{
		{"salary 22,000 to 53,870 taka per month", "22,000 to 53,870 taka"},
		{"pay scale: 16,000 - 38,640", "pay scale: 16,000 - 38,640"},
		{"compensation grade 9 as per rules", "grade 9"},
		{"no salary mentioned", ""},
	}

	for _, tt := range tests {
		if got := e.Salary(tt.input); got != tt.want {
			t.Errorf("Salary(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSkills(t *testing.T) {
	e := New()

	got := e.Skills("Must know MS Office, Python and SQL. Strong communication required.")
	want := []string{"Communication", "Ms Office", "Python", "Sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Skills = %v, want %v", got, want)
	}

	if got := e.Skills(""); got != nil {
		t.Errorf("Skills(\"\") = %v, want nil", got)
	}
}

func TestSkillsDeterministic(t *testing.T) {
	e := New()
	text := "python java sql communication leadership excel linux git"

	first := e.Skills(text)
	for i := 0; i < 10; i++ {
		if got := e.Skills(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Skills not deterministic: %v vs %v", got, first)
		}
	}
}

func TestGradeScale(t *testing.T) {
	e := New()

	tests := []struct {
		input string
		want  string
	}{
		{"grade 9", "Grade 9"},
		{"pay scale 10", "Pay Scale 10"},
		{"class ii", "Class Ii"},
		{"category b", "Category B"},
		{"nothing here", ""},
	}

	for _, tt := range tests {
		if got := e.GradeScale(tt.input); got != tt.want {
			t.Errorf("GradeScale(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEducation(t *testing.T) {
	e := New()

	got := e.Education("Bachelor degree in computer science from a recognized university")
	if got == "" {
		t.Fatal("Education returned empty for degree text")
	}

	if got := e.Education("no education info"); got != "" {
		t.Errorf("Education = %q, want empty", got)
	}
}

func intp(n int) *int { return &n }

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntPtr(p *int) string {
	if p == nil {
		return "nil"
	}
	return string(rune('0'+*p/10)) + string(rune('0'+*p%10))
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
