// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"time"

	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/formatters"
	"chakri-scan/internal/job"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(jobs []job.ScoredJob, report cleaner.BatchReport, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(jobs) == 0 {
		return "No jobs found.", nil
	}

	var builder strings.Builder

	for i, sj := range jobs {
		if i > 0 {
			builder.WriteString("\n")
		}
		f.appendJob(&builder, sj, options)
	}

	if options.IncludeReport {
		f.appendSummary(&builder, report)
	}

	return builder.String(), nil
}

func (f *Formatter) appendJob(builder *strings.Builder, sj job.ScoredJob, options formatters.FormatterOptions) {
	j := sj.Job

	builder.WriteString(f.colors["white"].Sprint(j.Title))
	builder.WriteString("\n")
	fmt.Fprintf(builder, "  Department:  %s\n", j.Department)
	fmt.Fprintf(builder, "  Location:    %s\n", j.Location)

	if j.Grade != "" {
		fmt.Fprintf(builder, "  Grade:       %s\n", j.Grade)
	}
	if j.Salary != "" {
		fmt.Fprintf(builder, "  Salary:      %s\n", j.Salary)
	}
	if j.Vacancies > 0 {
		fmt.Fprintf(builder, "  Vacancies:   %d\n", j.Vacancies)
	}
	if j.Education != "" {
		fmt.Fprintf(builder, "  Education:   %s\n", j.Education)
	}
	if j.Experience != "" {
		fmt.Fprintf(builder, "  Experience:  %s\n", j.Experience)
	}
	if ageText := formatAge(j.AgeMin, j.AgeMax); ageText != "" {
		fmt.Fprintf(builder, "  Age:         %s\n", ageText)
	}
	if len(j.Skills) > 0 {
		fmt.Fprintf(builder, "  Skills:      %s\n", strings.Join(j.Skills, ", "))
	}
	if j.DeadlineDate != nil {
		deadline := j.DeadlineDate.Format("2006-01-02")
		if j.DeadlineDate.Before(time.Now().AddDate(0, 0, 7)) {
			deadline = f.colors["red"].Sprint(deadline)
		}
		fmt.Fprintf(builder, "  Deadline:    %s\n", deadline)
	}
	if j.ApplicationLink != "" {
		fmt.Fprintf(builder, "  Apply:       %s\n", f.colors["cyan"].Sprint(j.ApplicationLink))
	}

	if options.IncludeScores {
		fmt.Fprintf(builder, "  Quality:     %s\n", f.scoreColor(sj.QualityScore).Sprintf("%.1f", sj.QualityScore))
	}
	if options.Verbose {
		fmt.Fprintf(builder, "  ID:          %s\n", j.ID)
		if j.SourceURL != "" {
			fmt.Fprintf(builder, "  Source:      %s\n", j.SourceURL)
		}
	}
}

func (f *Formatter) appendSummary(builder *strings.Builder, report cleaner.BatchReport) {
	builder.WriteString("\n")
	builder.WriteString(f.colors["white"].Sprint("Summary"))
	builder.WriteString("\n")
	fmt.Fprintf(builder, "  Records in:       %d\n", report.OriginalCount)
	fmt.Fprintf(builder, "  Jobs out:         %d\n", report.CleanedCount)
	fmt.Fprintf(builder, "  Invalid:          %d\n", report.InvalidCount)
	fmt.Fprintf(builder, "  Below threshold:  %d\n", report.LowQualityCount)
	fmt.Fprintf(builder, "  Duplicates:       %d\n", report.DuplicateCount)
	fmt.Fprintf(builder, "  Average quality:  %.1f\n", report.AverageQuality)
}

func (f *Formatter) scoreColor(score float64) *color.Color {
	switch {
	case score >= 70:
		return f.colors["green"]
	case score >= 50:
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}

func formatAge(min, max *int) string {
	switch {
	case min != nil && max != nil && *min == *max:
		return fmt.Sprintf("%d years", *min)
	case min != nil && max != nil:
		return fmt.Sprintf("%d-%d years", *min, *max)
	case max != nil:
		return fmt.Sprintf("up to %d years", *max)
	case min != nil:
		return fmt.Sprintf("%d+ years", *min)
	}
	return ""
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
