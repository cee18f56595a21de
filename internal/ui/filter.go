package ui

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// matchesFilter does a case-insensitive substring match after Unicode
// normalization, so composed and decomposed forms of the same name
// compare equal.
func matchesFilter(name, filter string) bool {
	if filter == "" {
		return true
	}
	n := strings.ToLower(norm.NFC.String(name))
	f := strings.ToLower(norm.NFC.String(filter))
	return strings.Contains(n, f)
}
