// Package agenda implements the editorial planning core for the station:
// calendar decomposition, content-key addressing, calendar-event lookup,
// weekly theme assignment, per-program content generation and the bulk
// text importer. Every operation is a pure function over the snapshots it
// receives; persistence belongs to the caller.
package agenda

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rcmonumento/agenda-go/internal/stringutil"
)

// Weekday names in Monday-first column order, as used across the agenda.
var WeekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// MonthNames indexed by time.Month - 1.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// weekdayIndexes maps the legacy 0-6 numeric day representation
// (Sunday-first) to canonical names. Program records may still carry it.
var weekdayIndexes = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// MonthName returns the Spanish name for m.
func MonthName(m time.Month) string {
	return MonthNames[int(m)-1]
}

// ParseMonth resolves a Spanish month name, tolerating case and accents.
// Returns the canonical name and false when the name is unknown.
func ParseMonth(name string) (string, bool) {
	n := stringutil.Normalize(name)
	for _, m := range MonthNames {
		if stringutil.Normalize(m) == n {
			return m, true
		}
	}
	return "", false
}

// CanonicalWeekday resolves a weekday name to its canonical form.
// Recognition tolerates accent variation ("miercoles") and abbreviation
// ("mié", "lun"); anything shorter than three letters is rejected to keep
// "ma" from matching both Martes and nothing in particular.
func CanonicalWeekday(name string) (string, bool) {
	n := stringutil.Normalize(name)
	if n == "" {
		return "", false
	}
	for _, d := range WeekdayNames {
		nd := stringutil.Normalize(d)
		if strings.Contains(n, nd) {
			return d, true
		}
		if len(n) >= 3 && strings.HasPrefix(nd, n) {
			return d, true
		}
	}
	return "", false
}

// IsWeekend reports whether the canonical day name is Saturday or Sunday.
// Weekend days are excluded from the mandatory theme rotation.
func IsWeekend(day string) bool {
	return day == "Sábado" || day == "Domingo"
}

// DayInfo is one populated weekday slot inside a week.
type DayInfo struct {
	Name string `json:"name"`
	Date int    `json:"date"`
}

// WeekInfo is a calendar week of the target month. Slots are Monday-first;
// a nil slot means the month boundary truncates the week at that column.
// Derived data, never persisted.
type WeekInfo struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Days  [7]*DayInfo `json:"days"`
}

// PopulatedDays returns the non-nil slots in column order.
func (w WeekInfo) PopulatedDays() []DayInfo {
	out := make([]DayInfo, 0, 7)
	for _, d := range w.Days {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Range returns the "start - end" label used by week listings.
func (w WeekInfo) Range() string {
	return fmt.Sprintf("%d - %d", w.Start, w.End)
}

// Category tags a program with its editorial ruleset. It is assigned once,
// when the program is created or imported, and looked up by the generator;
// renaming a program never changes how its content is derived.
type Category string

const (
	// CategoryFixedCalendar programs cover a distinct subject per weekday,
	// defined once in the program's TopicCalendar.
	CategoryFixedCalendar Category = "fixed-calendar"

	// CategoryLifestyle programs stay on home/family ground and are exempt
	// from the political and efeméride-driven themes.
	CategoryLifestyle Category = "lifestyle"

	// CategoryNews programs inherit the day's central theme directly.
	CategoryNews Category = "news"

	// CategorySingleGenre programs are strictly about one musical genre.
	CategorySingleGenre Category = "single-genre"

	// CategoryYouth programs focus on the youth audience.
	CategoryYouth Category = "youth"

	// CategoryGeneral is the default ruleset for unclassified programs.
	CategoryGeneral Category = "general"
)

// ValidCategory reports whether c is one of the known category tags.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFixedCalendar, CategoryLifestyle, CategoryNews,
		CategorySingleGenre, CategoryYouth, CategoryGeneral:
		return true
	}
	return false
}

// DailyContent is the editorial payload for one (program, content key) pair.
type DailyContent struct {
	Theme        string `json:"theme"`
	Ideas        string `json:"ideas"`
	Instructions string `json:"instructions,omitempty"`
}

// IsZero reports whether the content carries no data at all.
func (c DailyContent) IsZero() bool {
	return c.Theme == "" && c.Ideas == "" && c.Instructions == ""
}

// AirDays is the set of weekdays a program airs on. The wire format accepts
// both canonical day names and the legacy Sunday-first 0-6 indexes; the
// in-memory form is always canonical names.
type AirDays []string

// UnmarshalJSON accepts a mixed array of day names and numeric indexes.
func (d *AirDays) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("air days: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			canonical, ok := CanonicalWeekday(name)
			if !ok {
				return fmt.Errorf("air days: unrecognized weekday %q", name)
			}
			out = append(out, canonical)
			continue
		}
		var idx int
		if err := json.Unmarshal(item, &idx); err != nil {
			return fmt.Errorf("air days: entry %s is neither a name nor an index", item)
		}
		if idx < 0 || idx > 6 {
			return fmt.Errorf("air days: index %d out of range 0-6", idx)
		}
		out = append(out, weekdayIndexes[idx])
	}
	*d = out
	return nil
}

// Contains reports whether the program airs on the given canonical day name.
func (d AirDays) Contains(day string) bool {
	for _, name := range d {
		if stringutil.FoldEqual(name, day) {
			return true
		}
	}
	return false
}

// Program is one station program and its addressed daily content.
type Program struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Time     string   `json:"time"` // "HH:MM" air time, used for schedule ordering
	Days     AirDays  `json:"days"`
	Active   bool     `json:"active"`
	Category Category `json:"category"`

	// TopicCalendar maps weekday name to the fixed subject covered that
	// day. Only meaningful for CategoryFixedCalendar programs.
	TopicCalendar map[string]string `json:"topic_calendar,omitempty"`

	// Genre is the fixed musical genre for CategorySingleGenre programs.
	Genre string `json:"genre,omitempty"`

	// DailyData maps content key to the program's editorial payload.
	DailyData map[string]DailyContent `json:"daily_data"`
}

// AirsOn reports whether the program is active and airs on the given day.
func (p Program) AirsOn(day string) bool {
	return p.Active && p.Days.Contains(day)
}

// Efemeride is a historical calendar event tied to a day of month.
type Efemeride struct {
	Day         int    `json:"day"`
	Label       string `json:"event"` // short label, typically a year or title
	Description string `json:"description"`
}

// Conmemoracion is an official commemorative designation for a day of month.
type Conmemoracion struct {
	Day           int    `json:"day"`
	National      string `json:"national"`
	International string `json:"international"`
}

// EfemeridesData holds the efemérides lists keyed by month name.
type EfemeridesData map[string][]Efemeride

// ConmemoracionesData holds the commemorations keyed by month name.
type ConmemoracionesData map[string][]Conmemoracion

// DayThemes maps a day-scoped content key to the day's central theme.
type DayThemes map[string]string

// AgendaFilenameCode derives the AgendaMMWW code the export collaborator
// stamps on generated files: zero-padded month number plus the approximate
// week of month (days 1-7 are week 1, 8-14 week 2, and so on).
func AgendaFilenameCode(month time.Month, dayOfMonth int) string {
	week := (dayOfMonth + 6) / 7
	return fmt.Sprintf("Agenda%02d%02d", int(month), week)
}

// firstToken extracts the first whitespace/punctuation-delimited token of s.
func firstToken(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.' || r == ';'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
