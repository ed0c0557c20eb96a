package agenda

import "github.com/rcmonumento/agenda-go/internal/stringutil"

// AssignWeekThemes produces one central theme per Monday-Friday slot of
// the week. Saturday and Sunday are free-theme days and stay out of the
// mandatory rotation.
//
// Two passes run in chronological day order:
//
//  1. Strong-match: a commemoration with national text wins the day
//     verbatim. Otherwise the day's efemérides are scanned against the
//     still-available mandatory themes in curated order; the first
//     keyword hit claims the theme for the day and removes it from the
//     weekly pool. Days with a historically significant efeméride but no
//     mandatory match get a synthesized "Historia: <label>" theme.
//  2. Fill: remaining weekdays pop the next available mandatory theme;
//     once the pool is empty they fall back to FallbackTheme.
//
// The two passes guarantee both full Monday-Friday coverage and that no
// mandatory theme repeats within the week.
func AssignWeekThemes(week WeekInfo, month string, idx *EventIndex) map[string]string {
	assigned := make(map[string]string)
	available := make([]string, len(MandatoryThemes))
	copy(available, MandatoryThemes)

	// Pass 1: strong matches.
	for _, day := range week.PopulatedDays() {
		if IsWeekend(day.Name) {
			continue
		}

		if comm := idx.CommemorationOnDay(month, day.Date); comm != nil && comm.National != "" {
			assigned[day.Name] = comm.National
			continue
		}

		events := idx.EventsOnDay(month, day.Date)
		if len(events) == 0 {
			continue
		}

		if theme, ok := matchMandatoryTheme(events, available); ok {
			assigned[day.Name] = theme
			available = removeTheme(available, theme)
			continue
		}

		if label, ok := significantEvent(events); ok {
			assigned[day.Name] = "Historia: " + label
		}
	}

	// Pass 2: rotation fill.
	for _, day := range week.PopulatedDays() {
		if IsWeekend(day.Name) || assigned[day.Name] != "" {
			continue
		}
		if len(available) > 0 {
			assigned[day.Name] = available[0]
			available = available[1:]
		} else {
			assigned[day.Name] = FallbackTheme
		}
	}

	return assigned
}

// matchMandatoryTheme scans the available themes in curated order and
// returns the first one whose keywords appear in any event's label or
// description.
func matchMandatoryTheme(events []Efemeride, available []string) (string, bool) {
	for _, theme := range available {
		for _, keyword := range ThemeKeywords[theme] {
			for _, e := range events {
				if stringutil.FoldContains(e.Label, keyword) || stringutil.FoldContains(e.Description, keyword) {
					return theme, true
				}
			}
		}
	}
	return "", false
}

// significantEvent returns the label of the first efeméride marked
// historically significant by its text.
func significantEvent(events []Efemeride) (string, bool) {
	for _, e := range events {
		for _, keyword := range historyDescriptionKeywords {
			if stringutil.FoldContains(e.Description, keyword) {
				return e.Label, true
			}
		}
		for _, keyword := range historyLabelKeywords {
			if stringutil.FoldContains(e.Label, keyword) {
				return e.Label, true
			}
		}
	}
	return "", false
}

func removeTheme(themes []string, theme string) []string {
	out := themes[:0]
	for _, t := range themes {
		if t != theme {
			out = append(out, t)
		}
	}
	return out
}
