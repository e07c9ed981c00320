package models

import "strings"

// NormalizeTeam canonicalizes a free-text team label for grouping and lookup:
// trim, collapse inner whitespace, uppercase. Idempotent. The raw label is
// stored next to the normalized one for display.
func NormalizeTeam(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
