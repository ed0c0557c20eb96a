package agenda

import "strings"

// LegacyMonth is the one month whose content was historically written
// under two-part keys before the month prefix existed. The fallback in
// ResolveContent/ResolveDayTheme is a narrow migration shim scoped to this
// month only; widening it would make one month's edits reappear in another
// month's view.
const LegacyMonth = "Enero"

// EncodeKey builds the current three-part content key scoping a fragment
// to (month, week, weekday). All writes use this form.
func EncodeKey(month, weekID, day string) string {
	return month + "-" + weekID + "-" + day
}

// LegacyKey builds the historical two-part key. Only ever consulted for
// LegacyMonth reads and deletions.
func LegacyKey(weekID, day string) string {
	return weekID + "-" + day
}

// ResolveContent looks up the content for (month, weekID, day) in a
// program's daily data. The current-form key is probed first; the legacy
// key is consulted only when month is LegacyMonth. Absent both, the zero
// DailyContent is returned.
func ResolveContent(dailyData map[string]DailyContent, month, weekID, day string) DailyContent {
	if c, ok := dailyData[EncodeKey(month, weekID, day)]; ok {
		return c
	}
	if month == LegacyMonth {
		if c, ok := dailyData[LegacyKey(weekID, day)]; ok {
			return c
		}
	}
	return DailyContent{}
}

// ResolveDayTheme looks up the central theme for (month, weekID, day),
// with the same legacy guard as ResolveContent. Returns "" when unset.
func ResolveDayTheme(themes DayThemes, month, weekID, day string) string {
	if t, ok := themes[EncodeKey(month, weekID, day)]; ok {
		return t
	}
	if month == LegacyMonth {
		if t, ok := themes[LegacyKey(weekID, day)]; ok {
			return t
		}
	}
	return ""
}

// WeekKeyPrefixes returns the key prefixes addressing one week of one
// month: the current-form prefix, plus the bare legacy prefix when (and
// only when) month is LegacyMonth.
func WeekKeyPrefixes(month, weekID string) []string {
	prefixes := []string{month + "-" + weekID + "-"}
	if month == LegacyMonth {
		prefixes = append(prefixes, weekID+"-")
	}
	return prefixes
}

// ClearWeek deletes every entry of m whose key belongs to the given week
// of the given month, honoring the legacy-month guard. Returns the number
// of deleted entries.
func ClearWeek[V any](m map[string]V, month, weekID string) int {
	prefixes := WeekKeyPrefixes(month, weekID)
	deleted := 0
	for key := range m {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(m, key)
				deleted++
				break
			}
		}
	}
	return deleted
}
