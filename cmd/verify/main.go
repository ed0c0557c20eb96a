// Package main implements the data consistency verification tool. It
// checks the built-in station grid and calendar definitions before a
// release, catching malformed seed data without touching a database.
package main

import (
	"fmt"
	"os"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	"github.com/rcmonumento/agenda-go/internal/data"
)

type verifyResult struct {
	name    string
	passed  bool
	message string
}

func main() {
	fmt.Println("Radio Ciudad Monumento - Seed Data Verification")
	fmt.Println("===============================================")

	results := []verifyResult{}
	results = append(results, verifyProgramGrid()...)
	results = append(results, verifyCalendar()...)
	results = append(results, verifyThemePool()...)

	fmt.Println("\nResults:")
	fmt.Println("--------")

	passed, failed := 0, 0
	for _, result := range results {
		status := "FAIL"
		if result.passed {
			status = "ok"
			passed++
		} else {
			failed++
		}
		fmt.Printf("[%s] %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\nSummary: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// verifyProgramGrid checks the built-in station grid for structural
// problems: duplicate ids, unknown categories, non-canonical air days
// and missing per-category fields.
func verifyProgramGrid() []verifyResult {
	results := []verifyResult{}

	seen := make(map[string]bool)
	duplicates := []string{}
	for _, p := range data.Programs {
		if seen[p.ID] {
			duplicates = append(duplicates, p.ID)
		}
		seen[p.ID] = true
	}
	results = append(results, verifyResult{
		name:    "Program IDs Unique",
		passed:  len(duplicates) == 0,
		message: fmt.Sprintf("%d programs, duplicates: %v", len(data.Programs), duplicates),
	})

	badCategory := []string{}
	badDays := []string{}
	missingCalendar := []string{}
	missingGenre := []string{}
	for _, p := range data.Programs {
		if !agenda.ValidCategory(p.Category) {
			badCategory = append(badCategory, p.ID)
		}
		for _, day := range p.Days {
			if canonical, ok := agenda.CanonicalWeekday(day); !ok || canonical != day {
				badDays = append(badDays, p.ID)
				break
			}
		}
		if p.Category == agenda.CategoryFixedCalendar && len(p.TopicCalendar) == 0 {
			missingCalendar = append(missingCalendar, p.ID)
		}
		if p.Category == agenda.CategorySingleGenre && p.Genre == "" {
			missingGenre = append(missingGenre, p.ID)
		}
	}

	results = append(results,
		verifyResult{
			name:    "Program Categories Valid",
			passed:  len(badCategory) == 0,
			message: fmt.Sprintf("invalid: %v", badCategory),
		},
		verifyResult{
			name:    "Air Days Canonical",
			passed:  len(badDays) == 0,
			message: fmt.Sprintf("non-canonical: %v", badDays),
		},
		verifyResult{
			name:    "Fixed-Calendar Programs Have Topic Calendars",
			passed:  len(missingCalendar) == 0,
			message: fmt.Sprintf("missing: %v", missingCalendar),
		},
		verifyResult{
			name:    "Single-Genre Programs Have Genres",
			passed:  len(missingGenre) == 0,
			message: fmt.Sprintf("missing: %v", missingGenre),
		},
	)

	return results
}

// verifyCalendar checks the efemérides and conmemoraciones tables for
// unknown month keys and out-of-range days.
func verifyCalendar() []verifyResult {
	results := []verifyResult{}

	badMonths := []string{}
	badDays := []string{}
	for month, events := range data.Efemerides {
		if _, ok := agenda.ParseMonth(month); !ok {
			badMonths = append(badMonths, month)
		}
		for _, e := range events {
			if e.Day < 1 || e.Day > 31 || e.Label == "" {
				badDays = append(badDays, fmt.Sprintf("%s/%d", month, e.Day))
			}
		}
	}
	for month, comms := range data.Conmemoraciones {
		if _, ok := agenda.ParseMonth(month); !ok {
			badMonths = append(badMonths, month)
		}
		for _, comm := range comms {
			if comm.Day < 1 || comm.Day > 31 {
				badDays = append(badDays, fmt.Sprintf("%s/%d", month, comm.Day))
			}
		}
	}

	results = append(results,
		verifyResult{
			name:    "Calendar Month Keys",
			passed:  len(badMonths) == 0,
			message: fmt.Sprintf("%d months of efemérides, unknown keys: %v", len(data.Efemerides), badMonths),
		},
		verifyResult{
			name:    "Calendar Day Ranges",
			passed:  len(badDays) == 0,
			message: fmt.Sprintf("out of range or unlabeled: %v", badDays),
		},
	)

	return results
}

// verifyThemePool checks that every mandatory theme carries keywords,
// otherwise it could never match an efeméride.
func verifyThemePool() []verifyResult {
	results := []verifyResult{}

	missing := []string{}
	for _, theme := range agenda.MandatoryThemes {
		if len(agenda.ThemeKeywords[theme]) == 0 {
			missing = append(missing, theme)
		}
	}
	results = append(results, verifyResult{
		name:    "Mandatory Themes Have Keywords",
		passed:  len(missing) == 0,
		message: fmt.Sprintf("%d themes, missing keywords: %v", len(agenda.MandatoryThemes), missing),
	})

	return results
}
