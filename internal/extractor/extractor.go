// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractor recovers typed field values from normalized free text
// using ordered regex pattern sets. Every method is pure: identical input
// always yields identical output, and malformed text is a no-match, never an
// error. Pattern order within a field is a deliberate priority ranking.
package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"chakri-scan/internal/lookup"
	"chakri-scan/internal/textnorm"
)

// Extractor holds the compiled pattern tables. Construct once with New and
// share freely: it is read-only after construction and safe for concurrent use.
type Extractor struct {
	skillPatterns map[string][]*regexp.Regexp
	skillKeywords []string

	educationPatterns []*regexp.Regexp

	freshGraduatePattern *regexp.Regexp
	experiencePatterns   []*regexp.Regexp

	salaryPatterns []*regexp.Regexp

	ageRangePattern *regexp.Regexp
	ageMaxPattern   *regexp.Regexp
	ageMinPattern   *regexp.Regexp
	ageBarePattern  *regexp.Regexp

	vacancyPatterns   []*regexp.Regexp
	bareNumberPattern *regexp.Regexp

	gradePatterns []*regexp.Regexp

	datePatterns []datePattern
}

type datePattern struct {
	re    *regexp.Regexp
	build func(groups []string) (time.Time, bool)
}

// New compiles all pattern tables.
func New() *Extractor {
	e := &Extractor{
		skillPatterns: map[string][]*regexp.Regexp{
			"programming": compileAll(
				`\b(?:python|java|javascript|php|c\+\+|c#|sql|html|css|react|angular|vue|node\.?js)\b`,
				`\b(?:django|flask|spring|laravel|bootstrap|jquery)\b`,
				`\b(?:mysql|postgresql|mongodb|oracle|sqlite)\b`,
			),
			"office": compileAll(
				`\b(?:microsoft\s+office|ms\s+office|excel|word|powerpoint|outlook)\b`,
				`\b(?:google\s+workspace|google\s+docs|sheets|slides)\b`,
				`\b(?:pdf|spreadsheet|presentation)\b`,
			),
			"technical": compileAll(
				`\b(?:autocad|solidworks|matlab|photoshop|illustrator)\b`,
				`\b(?:linux|windows|unix|ubuntu|centos)\b`,
				`\b(?:git|github|gitlab|svn|version\s+control)\b`,
			),
			"soft_skills": compileAll(
				`\b(?:communication|leadership|teamwork|problem\s+solving|analytical)\b`,
				`\b(?:project\s+management|time\s+management|critical\s+thinking)\b`,
				`\b(?:presentation|negotiation|interpersonal|organizational)\b`,
			),
		},
		skillKeywords: []string{
			"typing", "internet", "email", "database", "networking",
			"troubleshooting", "documentation", "reporting", "analysis",
			"research", "planning", "coordination", "supervision",
		},

		educationPatterns: compileAll(
			`\b(?:bachelor|masters?|phd|doctorate|diploma|certificate)\b`,
			`\b(?:b\.?sc|m\.?sc|ba|ma|bba|mba|llb|mbbs)\b`,
			`\b(?:engineering|medicine|arts|science|commerce|law|business)\b`,
			`\b(?:computer\s+science|civil\s+engineering|electrical\s+engineering)\b`,
			`\b(?:mechanical\s+engineering|software\s+engineering)\b`,
			`\b(?:university|college|institute|polytechnic)\b`,
		),

		// Fresh-graduate phrasing always wins over numeric experience
		// patterns that could latch onto adjacent text.
		freshGraduatePattern: regexp.MustCompile(`fresh\s+graduate|fresher|entry\s+level|no\s+experience`),
		experiencePatterns: compileAll(
			`(\d+)[+\-\s]*(?:to|-)?\s*(\d+)?\s*years?\s+(?:of\s+)?experience`,
			`minimum\s+(\d+)\s+years?\s+experience`,
			`at\s+least\s+(\d+)\s+years?\s+experience`,
			`(\d+)\s*\+\s*years?\s+experience`,
		),

		salaryPatterns: compileAll(
			`(\d{1,3}(?:,\d{3})*)\s*(?:to|-)?\s*(\d{1,3}(?:,\d{3})*)?\s*(?:taka|tk|bdt)`,
			`grade\s*(\d+)`,
			`pay\s+scale[:\s]+(\d+(?:,\d+)*)\s*-\s*(\d+(?:,\d+)*)`,
			`salary[:\s]+(\d+(?:,\d+)*)\s*(?:to|-)?\s*(\d+(?:,\d+)*)?`,
		),

		ageRangePattern: regexp.MustCompile(`(\d+)\s*(?:to|-)\s*(\d+)`),
		ageMaxPattern:   regexp.MustCompile(`maximum\s*(?:age[:\s]*)?(\d+)`),
		ageMinPattern:   regexp.MustCompile(`minimum\s*(?:age[:\s]*)?(\d+)`),
		ageBarePattern:  regexp.MustCompile(`(\d+)\s*years?`),

		vacancyPatterns: compileAll(
			`(\d+)\s*(?:posts?|positions?|vacancies|openings?)`,
			`vacancies?[:\s]+(\d+)`,
			`posts?[:\s]+(\d+)`,
			`(\d+)\s*(?:জন|persons?)`,
		),
		bareNumberPattern: regexp.MustCompile(`\b(\d+)\b`),

		gradePatterns: compileAll(
			`grade[:\s]+(\d+)`,
			`pay\s+scale[:\s]+(\d+)`,
			`class[:\s]+([ivxl]+)`,
			`category[:\s]+([abc])`,
		),
	}

	e.datePatterns = []datePattern{
		{regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{4})`), buildDayMonthYear},
		{regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`), buildYearMonthDay},
		{regexp.MustCompile(`(\d{1,2})\s+(` + lookup.MonthPattern + `)\s+(\d{4})`), buildDayNameYear},
		{regexp.MustCompile(`(` + lookup.MonthPattern + `)\s+(\d{1,2}),?\s+(\d{4})`), buildNameDayYear},
	}

	return e
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Skills returns every recognized skill in the text, title-cased and
// deduplicated. Tokens of two characters or fewer are discarded.
func (e *Extractor) Skills(text string) []string {
	if text == "" {
		return nil
	}

	found := mapset.NewThreadUnsafeSet[string]()
	lower := strings.ToLower(text)

	for _, patterns := range e.skillPatterns {
		for _, re := range patterns {
			for _, m := range re.FindAllString(lower, -1) {
				found.Add(m)
			}
		}
	}
	for _, kw := range e.skillKeywords {
		if strings.Contains(lower, kw) {
			found.Add(kw)
		}
	}

	var skills []string
	for _, skill := range found.ToSlice() {
		skill = strings.TrimSpace(skill)
		if len(skill) > 2 {
			skills = append(skills, lookup.TitleCase(skill))
		}
	}
	sort.Strings(skills)
	return skills
}

// Education returns a comma-joined list of recognized degree and field terms,
// or "" when nothing matches.
func (e *Extractor) Education(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var terms []string

	for _, re := range e.educationPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			term := lookup.TitleCase(m)
			if !seen[term] {
				seen[term] = true
				terms = append(terms, term)
			}
		}
	}

	return strings.Join(terms, ", ")
}

// Experience returns "Fresh Graduate", "N-M years", "N+ years", or "".
// The fresh-graduate check runs first by design.
func (e *Extractor) Experience(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	if e.freshGraduatePattern.MatchString(lower) {
		return "Fresh Graduate"
	}

	for _, re := range e.experiencePatterns {
		groups := re.FindStringSubmatch(lower)
		if groups == nil {
			continue
		}
		if len(groups) >= 3 && groups[2] != "" {
			return groups[1] + "-" + groups[2] + " years"
		}
		if groups[1] != "" {
			return groups[1] + "+ years"
		}
	}

	return ""
}

// Salary returns the raw matched span for the first salary-shaped pattern.
// Normalization into the canonical "<low>-<high> BDT" form is the cleaner's
// job, not the extractor's.
func (e *Extractor) Salary(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	for _, re := range e.salaryPatterns {
		if m := re.FindString(lower); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// AgeRange returns (min, max); either bound may be nil. Priority order:
// explicit "A to B" range, then "maximum N", then "minimum N", then a bare
// "N years" which pins both bounds to N.
func (e *Extractor) AgeRange(text string) (*int, *int) {
	if text == "" {
		return nil, nil
	}

	lower := asciiDigits(strings.ToLower(text))

	if g := e.ageRangePattern.FindStringSubmatch(lower); g != nil {
		return atoiPtr(g[1]), atoiPtr(g[2])
	}
	if g := e.ageMaxPattern.FindStringSubmatch(lower); g != nil {
		return nil, atoiPtr(g[1])
	}
	if g := e.ageMinPattern.FindStringSubmatch(lower); g != nil {
		return atoiPtr(g[1]), nil
	}
	if g := e.ageBarePattern.FindStringSubmatch(lower); g != nil {
		n := atoiPtr(g[1])
		m := atoiPtr(g[1])
		return n, m
	}

	return nil, nil
}

// Vacancies extracts a post count. When no explicit "N posts" style phrase
// matches but the text clearly talks about vacancies, the first bare number
// in [1,1000] is accepted, trading a few false positives for recall.
func (e *Extractor) Vacancies(text string) int {
	if text == "" {
		return 0
	}

	lower := asciiDigits(strings.ToLower(text))

	for _, re := range e.vacancyPatterns {
		if g := re.FindStringSubmatch(lower); g != nil {
			n, err := strconv.Atoi(g[1])
			if err == nil {
				return n
			}
		}
	}

	if strings.Contains(lower, "vacanc") || strings.Contains(lower, "post") {
		for _, g := range e.bareNumberPattern.FindAllStringSubmatch(lower, -1) {
			if n, err := strconv.Atoi(g[1]); err == nil && n >= 1 && n <= 1000 {
				return n
			}
		}
	}

	return 0
}

// GradeScale extracts government grade/scale designations ("Grade 9",
// "Class Ii", "Category A"), returning the matched span title-cased.
func (e *Extractor) GradeScale(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	for _, re := range e.gradePatterns {
		if m := re.FindString(lower); m != "" {
			return lookup.TitleCase(m)
		}
	}
	return ""
}

// Deadline extracts the first parseable date; day-32 style garbage is a
// no-match, not an error.
func (e *Extractor) Deadline(text string) *time.Time {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	for _, dp := range e.datePatterns {
		groups := dp.re.FindStringSubmatch(lower)
		if groups == nil {
			continue
		}
		if t, ok := dp.build(groups[1:]); ok {
			return &t
		}
	}
	return nil
}

func buildDayMonthYear(g []string) (time.Time, bool) {
	return newDate(atoi(g[2]), atoi(g[1]), atoi(g[0]))
}

func buildYearMonthDay(g []string) (time.Time, bool) {
	return newDate(atoi(g[0]), atoi(g[1]), atoi(g[2]))
}

func buildDayNameYear(g []string) (time.Time, bool) {
	month, ok := lookup.Months[g[1]]
	if !ok {
		return time.Time{}, false
	}
	return newDate(atoi(g[2]), month, atoi(g[0]))
}

func buildNameDayYear(g []string) (time.Time, bool) {
	month, ok := lookup.Months[g[0]]
	if !ok {
		return time.Time{}, false
	}
	return newDate(atoi(g[2]), month, atoi(g[1]))
}

// newDate builds a UTC date and rejects values time.Date would silently
// normalize (e.g. 32 January becoming 1 February).
func newDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// asciiDigits converts Bengali numerals so the numeric patterns see them.
func asciiDigits(s string) string {
	return textnorm.ASCIIDigits(s)
}
