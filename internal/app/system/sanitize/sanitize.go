// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-entered free-text fields
// (skills, descriptions, addresses) before they are persisted. The API
// stores plain text only, so the strict policy removes every tag.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text returns s with all HTML stripped and surrounding space trimmed.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
