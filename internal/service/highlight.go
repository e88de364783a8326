package service

import "strings"

// SuspiciousWords are marked up in emails classified as fraud.
var SuspiciousWords = []string{
	"urgent", "verify", "click", "password",
	"bank", "account", "login", "confirm",
}

// Highlight wraps every occurrence of a suspicious word in open/close. Only
// the lowercase and the capitalized spelling match, and matches are plain
// substrings, so "Bank" inside "Banking" is wrapped too.
func Highlight(text, open, close string) string {
	for _, word := range SuspiciousWords {
		text = strings.ReplaceAll(text, word, open+word+close)
		capitalized := strings.ToUpper(word[:1]) + word[1:]
		text = strings.ReplaceAll(text, capitalized, open+capitalized+close)
	}
	return text
}
