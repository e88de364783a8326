// Package textnorm prepares free-form email text for the classifier.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, drops URLs and every character that is not a
// lowercase ASCII letter or whitespace, then collapses and trims whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonLetterPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
