package storage

import "strings"

// sanitizeSearchTerm escapes SQLite LIKE special characters so search
// terms and key prefixes are matched literally.
func sanitizeSearchTerm(term string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\", // Escape backslash first
		"%", "\\%",
		"_", "\\_",
	)
	return replacer.Replace(term)
}
