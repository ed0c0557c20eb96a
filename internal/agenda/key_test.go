package agenda

import "testing"

func TestResolveContentCurrentKeyWins(t *testing.T) {
	data := map[string]DailyContent{
		"Enero-semana-1-Lunes": {Theme: "current"},
		"semana-1-Lunes":       {Theme: "legacy"},
	}

	got := ResolveContent(data, "Enero", "semana-1", "Lunes")
	if got.Theme != "current" {
		t.Errorf("Expected current-form key to win, got %q", got.Theme)
	}
}

func TestResolveContentLegacyFallbackOnlyForLegacyMonth(t *testing.T) {
	data := map[string]DailyContent{
		"semana-1-Lunes": {Theme: "legacy"},
	}

	if got := ResolveContent(data, "Enero", "semana-1", "Lunes"); got.Theme != "legacy" {
		t.Errorf("Expected legacy fallback for Enero, got %q", got.Theme)
	}

	// The same two-part key must be invisible from any other month.
	if got := ResolveContent(data, "Febrero", "semana-1", "Lunes"); !got.IsZero() {
		t.Errorf("Expected zero content for Febrero, got %+v", got)
	}
}

func TestResolveDayTheme(t *testing.T) {
	themes := DayThemes{
		"Marzo-semana-2-Martes": "Soberanía Alimentaria",
		"semana-2-Martes":       "legado viejo",
	}

	if got := ResolveDayTheme(themes, "Marzo", "semana-2", "Martes"); got != "Soberanía Alimentaria" {
		t.Errorf("Expected current theme, got %q", got)
	}
	if got := ResolveDayTheme(themes, "Abril", "semana-2", "Martes"); got != "" {
		t.Errorf("Expected empty theme for Abril, got %q", got)
	}
	if got := ResolveDayTheme(themes, "Enero", "semana-2", "Martes"); got != "legado viejo" {
		t.Errorf("Expected legacy theme for Enero, got %q", got)
	}
}

func TestClearWeekScopedToMonth(t *testing.T) {
	data := map[string]DailyContent{
		"Marzo-semana-2-Lunes":    {Theme: "a"},
		"Marzo-semana-2-Viernes":  {Theme: "b"},
		"Marzo-semana-1-Lunes":    {Theme: "keep"},
		"Febrero-semana-2-Lunes":  {Theme: "keep"},
		"Febrero-semana-2-Martes": {Theme: "keep"},
		"semana-2-Lunes":          {Theme: "keep"}, // legacy, not Marzo's to clear
	}

	deleted := ClearWeek(data, "Marzo", "semana-2")
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}
	if len(data) != 4 {
		t.Errorf("Expected 4 surviving entries, got %d", len(data))
	}
	for _, key := range []string{"Marzo-semana-1-Lunes", "Febrero-semana-2-Lunes", "Febrero-semana-2-Martes", "semana-2-Lunes"} {
		if _, ok := data[key]; !ok {
			t.Errorf("Expected %s to survive", key)
		}
	}
}

func TestClearWeekLegacyMonthIncludesBareKeys(t *testing.T) {
	data := map[string]DailyContent{
		"Enero-semana-3-Lunes": {Theme: "a"},
		"semana-3-Martes":      {Theme: "b"},
		"semana-1-Martes":      {Theme: "keep"},
	}

	deleted := ClearWeek(data, "Enero", "semana-3")
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}
	if _, ok := data["semana-1-Martes"]; !ok {
		t.Error("Expected semana-1 legacy entry to survive")
	}
}

func TestWeekKeyPrefixes(t *testing.T) {
	got := WeekKeyPrefixes("Octubre", "semana-4")
	if len(got) != 1 || got[0] != "Octubre-semana-4-" {
		t.Errorf("Expected single current-form prefix, got %v", got)
	}

	got = WeekKeyPrefixes("Enero", "semana-4")
	if len(got) != 2 || got[1] != "semana-4-" {
		t.Errorf("Expected legacy prefix for Enero, got %v", got)
	}
}
