package agenda

import (
	"fmt"
	"time"
)

// WeeksInMonth decomposes the target month into calendar weeks using the
// Monday-start convention. Each week carries up to seven populated slots;
// the first and last week are truncated when the month boundary falls
// mid-week, and days from adjacent months are never padded in.
//
// Week ids are "semana-1", "semana-2", ... in month-chronological order.
// The result is deterministic for a given (year, month), including
// February in leap and non-leap years.
func WeeksInMonth(year int, month time.Month) []WeekInfo {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var weeks []WeekInfo
	day := 1
	for day <= lastDay {
		var week WeekInfo
		for col := mondayColumn(year, month, day); day <= lastDay && col <= 6; col++ {
			week.Days[col] = &DayInfo{Name: WeekdayNames[col], Date: day}
			day++
		}

		populated := week.PopulatedDays()
		week.ID = fmt.Sprintf("semana-%d", len(weeks)+1)
		week.Label = fmt.Sprintf("Semana %d", len(weeks)+1)
		week.Start = populated[0].Date
		week.End = populated[len(populated)-1].Date
		weeks = append(weeks, week)
	}

	return weeks
}

// FindWeek returns the week with the given id, or false when the id does
// not exist in the month.
func FindWeek(weeks []WeekInfo, weekID string) (WeekInfo, bool) {
	for _, w := range weeks {
		if w.ID == weekID {
			return w, true
		}
	}
	return WeekInfo{}, false
}

// mondayColumn returns the Monday-first column (Monday=0 ... Sunday=6)
// for the given day of month.
func mondayColumn(year int, month time.Month, day int) int {
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}
