// SPDX-License-Identifier: MIT

// Package slug derives URL path segments from free-form titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashes  = regexp.MustCompile(`-{2,}`)
)

// stripMarks decomposes to NFD and drops combining marks, so "é" becomes "e".
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// Make returns a lowercase ASCII token containing only [a-z0-9_-], with no
// leading, trailing or repeated hyphens. Make("") == "".
func Make(text string) string {
	if text == "" {
		return ""
	}
	s, _, err := transform.String(stripMarks(), text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), "-")
	s = nonWord.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
