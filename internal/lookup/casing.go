// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package lookup

import "strings"

// TitleCase capitalizes the first letter of every word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// SmartTitleCase capitalizes every word except the CaseStopWords, which stay
// lower-case ("Ministry of Public Works and Housing").
func SmartTitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if CaseStopWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
		} else {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
