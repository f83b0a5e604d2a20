// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package lookup

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"assistant engineer", "Assistant Engineer"},
		{"MINISTRY OF FINANCE", "Ministry Of Finance"},
		{"  dhaka  ", "Dhaka"},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.input); got != tt.expected {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSmartTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ministry of finance", "Ministry of Finance"},
		{"department of agriculture and forestry", "Department of Agriculture and Forestry"},
		{"officer in charge", "Officer in Charge"},
		{"the directorate", "the Directorate"},
	}

	for _, tt := range tests {
		if got := SmartTitleCase(tt.input); got != tt.expected {
			t.Errorf("SmartTitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
