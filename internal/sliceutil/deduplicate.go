// Package sliceutil provides generic slice manipulation utilities.
package sliceutil

// Deduplicate removes duplicate items from a slice while preserving
// order. The keyFunc extracts a comparison key from each item; only the
// first occurrence of each key is kept.
//
// Example:
//
//	events := []agenda.Efemeride{{Day: 10, Label: "1868"}, {Day: 10, Label: "1868"}}
//	unique := sliceutil.Deduplicate(events, func(e agenda.Efemeride) string { return e.Label })
func Deduplicate[T any, K comparable](items []T, keyFunc func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]bool, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		key := keyFunc(item)
		if !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}

	return result
}
