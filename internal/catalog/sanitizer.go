// Package catalog maps canonical feed records into UI-typed vehicles
// and owns the in-memory snapshot the API serves from.
package catalog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from feed-supplied free text. Descriptions
// come from a spreadsheet anyone with edit access can touch, so they
// are treated as untrusted before reaching API responses.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer with a strict, text-only policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns the input with all markup removed. Idempotent;
// empty input yields empty output.
func (s *Sanitizer) Sanitize(raw string) string {
	clean := s.policy.Sanitize(raw)
	// The policy escapes entities while stripping tags; unescape so
	// plain text like "GNC & equipo" round-trips.
	return strings.TrimSpace(html.UnescapeString(clean))
}
