// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"strings"
	"testing"

	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/job"
)

type stubFormatter struct{ name string }

func (s *stubFormatter) Format(jobs []job.ScoredJob, report cleaner.BatchReport, options FormatterOptions) (string, error) {
	return s.name, nil
}
func (s *stubFormatter) Name() string          { return s.name }
func (s *stubFormatter) Description() string   { return "stub" }
func (s *stubFormatter) FileExtension() string { return ".stub" }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubFormatter{name: "stub"})

	f, ok := r.Get("stub")
	if !ok || f.Name() != "stub" {
		t.Fatalf("Get(stub) = %v, %v", f, ok)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) reported success")
	}

	names := r.List()
	if len(names) != 1 || names[0] != "stub" {
		t.Errorf("List() = %v, want [stub]", names)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export("unknown-format", nil, cleaner.BatchReport{}, FormatterOptions{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetFormatInfoUnknown(t *testing.T) {
	if info := GetFormatInfo("nope"); info.Name != "" {
		t.Errorf("expected empty info, got %+v", info)
	}
}
