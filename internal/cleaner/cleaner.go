// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cleaner normalizes extracted field values against the shared lookup
// tables, validates whole records, scores their completeness and deduplicates
// batches. Field cleaners null out-of-domain values instead of clamping them:
// a wrong value is worse than no value.
package cleaner

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"chakri-scan/internal/job"
	"chakri-scan/internal/lookup"
	"chakri-scan/internal/observability"
	"chakri-scan/internal/textnorm"
)

// NumericKind selects the validation domain for CleanNumeric.
type NumericKind int

const (
	KindGeneric   NumericKind = iota // any positive integer
	KindVacancies                    // 1..10000
	KindAge                          // 15..70
)

// Date validity window relative to processing time. Guards against two-digit
// year misreads propagating downstream.
const (
	datePastWindow   = 365 * 24 * time.Hour
	dateFutureWindow = 730 * 24 * time.Hour
)

// DefaultMinQualityScore is the batch admission threshold when the caller
// does not supply one.
const DefaultMinQualityScore = 50.0

// Cleaner holds the compiled cleaning patterns. Read-only after New, safe for
// concurrent use.
type Cleaner struct {
	titleAbbrev   []abbrevRule
	boilerplate   []*regexp.Regexp
	deptPrefixes  []*regexp.Regexp
	locationNoise *regexp.Regexp
	countryName   *regexp.Regexp

	currencyWords *regexp.Regexp
	thousandsSep  *regexp.Regexp
	salaryRange   *regexp.Regexp
	salaryGrade   *regexp.Regexp
	salaryScale   *regexp.Regexp

	firstNumber *regexp.Regexp
	urlShape    *regexp.Regexp

	now func() time.Time

	observer *observability.StandardObserver
}

type abbrevRule struct {
	re   *regexp.Regexp
	full string
}

// New compiles the cleaning rules from the shared lookup tables.
func New() *Cleaner {
	c := &Cleaner{
		locationNoise: regexp.MustCompile(`\b(` + strings.Join(lookup.LocationSuffixes, "|") + `)\b`),
		countryName:   regexp.MustCompile(`\bbangladesh\b`),

		currencyWords: regexp.MustCompile(`(?i)\b(taka|tk|bdt|rupees?)\b`),
		thousandsSep:  regexp.MustCompile(`(\d+),(\d+)`),
		salaryRange:   regexp.MustCompile(`(?i)(\d+)\s*(?:to|-)?\s*(\d+)?\s*(?:bdt|per\s+month)?`),
		salaryGrade:   regexp.MustCompile(`grade\s*(\d+)`),
		salaryScale:   regexp.MustCompile(`pay\s+scale[:\s]+(\d+)\s*-\s*(\d+)`),

		firstNumber: regexp.MustCompile(`\d+`),
		urlShape:    regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`),

		now: time.Now,
	}

	for _, m := range lookup.TitleAbbreviations {
		c.titleAbbrev = append(c.titleAbbrev, abbrevRule{
			re:   regexp.MustCompile(`(?i)\b` + m.Alias + `\b`),
			full: m.Canonical,
		})
	}
	for _, p := range lookup.TitleBoilerplate {
		c.boilerplate = append(c.boilerplate, regexp.MustCompile(`(?i)`+p))
	}
	c.deptPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`\b(ministry\s+of\s+the?|department\s+of\s+the?)\b`),
		regexp.MustCompile(`\b(government\s+of\s+bangladesh|bangladesh\s+government)\b`),
	}

	return c
}

// SetObserver attaches the pipeline observer for batch timing.
func (c *Cleaner) SetObserver(observer *observability.StandardObserver) {
	c.observer = observer
}

// CleanTitle expands abbreviations, strips recruitment boilerplate and
// applies stop-word-aware title casing.
func (c *Cleaner) CleanTitle(title string) string {
	if title == "" {
		return ""
	}

	title = textnorm.Normalize(title)
	for _, rule := range c.titleAbbrev {
		title = rule.re.ReplaceAllString(title, rule.full)
	}
	for _, re := range c.boilerplate {
		title = re.ReplaceAllString(title, "")
	}

	return lookup.SmartTitleCase(title)
}

// NormalizeDepartment resolves known abbreviations first (table order
// matters: first hit wins), otherwise strips generic government prefixes and
// title-cases the remainder.
func (c *Cleaner) NormalizeDepartment(department string) string {
	if department == "" {
		return ""
	}

	department = textnorm.Normalize(strings.ToLower(department))

	for _, m := range lookup.Departments {
		if strings.Contains(department, m.Alias) {
			return m.Canonical
		}
	}

	for _, re := range c.deptPrefixes {
		department = re.ReplaceAllString(department, "")
	}

	return lookup.SmartTitleCase(department)
}

// NormalizeLocation resolves city aliases first, otherwise strips generic
// administrative suffixes and the country name.
func (c *Cleaner) NormalizeLocation(location string) string {
	if location == "" {
		return ""
	}

	location = textnorm.Normalize(strings.ToLower(location))

	for _, m := range lookup.Cities {
		if strings.Contains(location, m.Alias) {
			return m.Canonical
		}
	}

	location = c.locationNoise.ReplaceAllString(location, "")
	location = c.countryName.ReplaceAllString(location, "")

	return lookup.TitleCase(location)
}

// CleanSalary normalizes a salary string into "<low>-<high> BDT" or
// "<value> BDT" when a numeric pattern is recognized. Unrecognized non-empty
// text comes back title-cased; empty text yields "".
func (c *Cleaner) CleanSalary(salary string) string {
	if salary == "" {
		return ""
	}

	s := textnorm.ASCIIDigits(textnorm.Normalize(strings.ToLower(salary)))
	s = c.currencyWords.ReplaceAllString(s, "bdt")

	// Repeat until stable: a single pass leaves "1,234,567" half-joined.
	for {
		next := c.thousandsSep.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}

	// Pattern priority: numeric range, then grade reference, then pay scale.
	if g := c.salaryRange.FindStringSubmatch(s); g != nil {
		if g[2] != "" {
			return g[1] + "-" + g[2] + " BDT"
		}
		return g[1] + " BDT"
	}
	if g := c.salaryGrade.FindStringSubmatch(s); g != nil {
		return g[1] + " BDT"
	}
	if g := c.salaryScale.FindStringSubmatch(s); g != nil {
		return g[1] + "-" + g[2] + " BDT"
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return lookup.TitleCase(s)
}

// CleanSkills lower-cases, drops stop words and sub-3-character tokens,
// applies the canonical spelling table and returns a sorted, deduplicated
// list.
func (c *Cleaner) CleanSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var cleaned []string

	for _, skill := range skills {
		skill = textnorm.Normalize(strings.ToLower(skill))
		if len(skill) <= 2 || lookup.SkillStopWords[skill] {
			continue
		}

		normalized, ok := lookup.Skills[skill]
		if !ok {
			normalized = lookup.TitleCase(skill)
		}
		if !seen[normalized] {
			seen[normalized] = true
			cleaned = append(cleaned, normalized)
		}
	}

	sort.Strings(cleaned)
	return cleaned
}

// CleanGrade title-cases a grade/scale designation; "" stays "".
func (c *Cleaner) CleanGrade(grade string) string {
	if grade == "" {
		return ""
	}
	grade = textnorm.Normalize(strings.ToLower(grade))
	if grade == "" {
		return ""
	}
	return lookup.TitleCase(grade)
}

// CleanNumeric extracts the first embedded number from text and validates it
// against the field domain. Out-of-domain values return 0 (absent) rather
// than being clamped.
func (c *Cleaner) CleanNumeric(text string, kind NumericKind) int {
	if text == "" {
		return 0
	}

	m := c.firstNumber.FindString(textnorm.ASCIIDigits(text))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}

	return c.ValidateNumeric(n, kind)
}

// ValidateNumeric applies the domain check for an already-parsed number.
func (c *Cleaner) ValidateNumeric(n int, kind NumericKind) int {
	switch kind {
	case KindVacancies:
		if n >= 1 && n <= 10000 {
			return n
		}
	case KindAge:
		if n >= 15 && n <= 70 {
			return n
		}
	default:
		if n > 0 {
			return n
		}
	}
	return 0
}

// CleanURL trims, defaults the scheme to https and validates the result as a
// minimal absolute URL. Returns "" when it still fails validation.
func (c *Cleaner) CleanURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	if !c.urlShape.MatchString(rawURL) {
		return ""
	}
	return rawURL
}

// ValidateDate rejects dates outside the plausibility window (one year back,
// two years forward).
func (c *Cleaner) ValidateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	now := c.now()
	if t.Before(now.Add(-datePastWindow)) || t.After(now.Add(dateFutureWindow)) {
		log.Printf("[cleaner] date %s outside plausibility window, dropping", t.Format("2006-01-02"))
		return nil
	}
	return t
}

// CleanDescription normalizes a description and collapses immediate word
// repetition left behind by sloppy markup scraping.
func (c *Cleaner) CleanDescription(description string) string {
	if description == "" {
		return ""
	}

	words := strings.Fields(textnorm.Normalize(description))
	out := words[:0]
	for i, w := range words {
		if i > 0 && w == words[i-1] {
			continue
		}
		out = append(out, w)
	}

	return strings.Join(out, " ")
}

// ValidateRecord enforces the required-field invariant on a parsed job.
func (c *Cleaner) ValidateRecord(j job.CanonicalJob) error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return fmt.Errorf("%w: title", job.ErrMissingRequiredField)
	case strings.TrimSpace(j.Department) == "":
		return fmt.Errorf("%w: department", job.ErrMissingRequiredField)
	case strings.TrimSpace(j.Location) == "":
		return fmt.Errorf("%w: location", job.ErrMissingRequiredField)
	}

	return nil
}

// DedupKey derives the batch identity key: cleaned title, normalized
// department and location joined by "|", lower-cased. Re-cleaning here makes
// the key stable for case and whitespace variants of the same posting.
func (c *Cleaner) DedupKey(title, department, location string) string {
	parts := []string{
		c.CleanTitle(title),
		c.NormalizeDepartment(department),
		c.NormalizeLocation(location),
	}

	var nonEmpty []string
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "|")
}
