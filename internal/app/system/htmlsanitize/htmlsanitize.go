// Package htmlsanitize strips markup from free-text fields before they are
// stored. Institution descriptions and admin notes come in from forms and
// are later rendered by clients, so they are reduced to plain text here.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Plain removes all HTML elements and attributes from s and unescapes the
// remaining entities, returning trimmed plain text.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
