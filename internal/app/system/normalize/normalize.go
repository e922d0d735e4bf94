// Package normalize provides small string normalization helpers applied
// before values are validated or persisted.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Username trims surrounding whitespace.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Capitalize uppercases the first rune and lowercases the rest.
// Applied to first and last names on create and on replace.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
