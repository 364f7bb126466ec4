package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag; signatures are plain text.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText removes markup and returns plain text. Entities that the
// policy escaped are decoded again because the API stores text, not HTML.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// sanitizeOptional sanitizes an optional field, mapping blank to nil.
func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeText(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
