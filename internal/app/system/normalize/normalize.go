// Package normalize holds small input-normalization helpers applied before
// values are validated or written to the store.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// stored in this normalized form so uniqueness is case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims surrounding whitespace. No format is enforced here; length
// constraints live in the validation layer.
func Phone(s string) string {
	return strings.TrimSpace(s)
}
