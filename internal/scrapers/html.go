// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"strings"

	"golang.org/x/net/html"
)

// link is an anchor harvested from a listing page.
type link struct {
	URL   string
	Title string
}

// parseHTML wraps html.Parse over a byte slice.
func parseHTML(body []byte) (*html.Node, error) {
	return html.Parse(strings.NewReader(string(body)))
}

// collectLinks returns all anchors whose href contains the given substring.
func collectLinks(root *html.Node, hrefContains string) []link {
	var links []link
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attr(n, "href")
		text := strings.TrimSpace(textContent(n))
		if href != "" && text != "" && strings.Contains(href, hrefContains) {
			links = append(links, link{URL: href, Title: text})
		}
	})
	return links
}

// selectText returns the text of the first element matching any of the given
// selectors. A selector is either a tag name ("h1") or a class (".job-title").
func selectText(root *html.Node, selectors ...string) string {
	for _, sel := range selectors {
		if n := findFirst(root, sel); n != nil {
			return strings.TrimSpace(textContent(n))
		}
	}
	return ""
}

// selectHref returns the href of the first element matching any selector.
func selectHref(root *html.Node, selectors ...string) string {
	for _, sel := range selectors {
		if n := findFirst(root, sel); n != nil {
			return attr(n, "href")
		}
	}
	return ""
}

func findFirst(root *html.Node, selector string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		if matches(n, selector) {
			found = n
		}
	})
	return found
}

func matches(n *html.Node, selector string) bool {
	if class, ok := strings.CutPrefix(selector, "."); ok {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
	return n.Data == selector
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := textContent(c); strings.TrimSpace(t) != "" {
			parts = append(parts, strings.TrimSpace(t))
		}
	}
	return strings.Join(parts, " ")
}
