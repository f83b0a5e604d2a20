// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textnorm flattens scraped free text into a predictable shape before
// any pattern matching runs against it.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Keep word characters, whitespace, the Bengali block and a handful of
	// punctuation; everything else is scraping noise.
	disallowedPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\x{0980}-\x{09FF}.,()-]`)
)

// Normalize strips markup and noise from scraped text. It is total (empty in,
// empty out, never an error) and idempotent, so callers may re-normalize
// already-clean text freely.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

var bengaliDigits = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
)

// ASCIIDigits converts Bengali numerals so ASCII-only numeric patterns can
// see them. NFKC does not cover this: Bengali digits carry no compatibility
// decomposition.
func ASCIIDigits(s string) string {
	return bengaliDigits.Replace(s)
}
