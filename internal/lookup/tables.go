// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lookup holds the shared normalization tables consumed by both the
// field extractor and the data cleaner. Keeping them in one place prevents the
// two components from drifting apart; bump Version whenever a table changes.
package lookup

// Version identifies the table revision baked into this build.
const Version = "2025.08"

// Mapping is an ordered alias -> canonical pair. Order is load-bearing for
// tables where aliases can overlap: the first match wins.
type Mapping struct {
	Alias     string
	Canonical string
}

// Departments maps common abbreviations of Bangladesh government bodies to
// their full names. Checked by substring, first hit wins.
var Departments = []Mapping{
	{"ict division", "Information and Communication Technology Division"},
	{"rhd", "Roads and Highways Department"},
	{"lged", "Local Government Engineering Department"},
	{"bsti", "Bangladesh Standards and Testing Institution"},
	{"btrc", "Bangladesh Telecommunication Regulatory Commission"},
	{"doe", "Department of Environment"},
	{"dae", "Department of Agricultural Extension"},
	{"dghs", "Directorate General of Health Services"},
	{"bcs", "Bangladesh Civil Service"},
	{"ntrca", "Non-Government Teachers Registration and Certification Authority"},
}

// TitleAbbreviations expands shortened job-title words. Matched on word
// boundaries, case-insensitive.
var TitleAbbreviations = []Mapping{
	{"asst", "Assistant"},
	{"sr", "Senior"},
	{"jr", "Junior"},
	{"mgr", "Manager"},
	{"exec", "Executive"},
	{"tech", "Technical"},
	{"admin", "Administrative"},
}

// TitleBoilerplate lists phrases stripped from titles before casing.
var TitleBoilerplate = []string{
	`\b(post\s+of|position\s+of|job\s+of)\b`,
	`\b(recruitment|hiring|vacancy)\b`,
	`\b(advertisement|circular)\b`,
}

// Cities maps spelling variants of Bangladeshi cities to a canonical name.
// Checked by substring, first hit wins ("chattogram" before bare casing).
var Cities = []Mapping{
	{"dhaka", "Dhaka"},
	{"chittagong", "Chittagong"},
	{"chattogram", "Chittagong"},
	{"sylhet", "Sylhet"},
	{"rajshahi", "Rajshahi"},
	{"khulna", "Khulna"},
	{"barisal", "Barisal"},
	{"barishal", "Barisal"},
	{"rangpur", "Rangpur"},
	{"mymensingh", "Mymensingh"},
	{"comilla", "Comilla"},
	{"cox's bazar", "Cox's Bazar"},
	{"coxs bazar", "Cox's Bazar"}, // apostrophe is stripped during normalization
	{"jessore", "Jessore"},
	{"bogra", "Bogra"},
	{"faridpur", "Faridpur"},
	{"pabna", "Pabna"},
}

// LocationSuffixes are generic administrative words removed from locations
// that did not match a known city.
var LocationSuffixes = []string{"district", "division", "upazila", "thana", "area"}

// Skills maps lower-cased skill spellings to their canonical form. Anything
// not in this table is title-cased as-is.
var Skills = map[string]string{
	"ms office":  "Microsoft Office",
	"ms word":    "Microsoft Word",
	"ms excel":   "Microsoft Excel",
	"powerpoint": "Microsoft PowerPoint",
	"js":         "JavaScript",
	"html5":      "HTML",
	"css3":       "CSS",
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
}

// SkillStopWords are tokens never useful as a skill on their own.
var SkillStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
}

// CaseStopWords stay lower-case in title-cased output ("Ministry of Finance").
var CaseStopWords = map[string]bool{
	"of": true, "and": true, "in": true, "for": true, "at": true, "the": true,
}

// Months resolves English month names for date extraction.
var Months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// MonthPattern is the alternation used inside date regexes.
const MonthPattern = "january|february|march|april|may|june|july|august|september|october|november|december"
