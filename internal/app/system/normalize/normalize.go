// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-entered fields
// before they are persisted or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. All email comparisons
// (volunteer uniqueness, login credential checks) go through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
