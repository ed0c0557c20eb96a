package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndGetProgram(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	program := &agenda.Program{
		ID:       "prog-arte",
		Name:     "Arte Bayamo",
		Time:     "14:00",
		Days:     agenda.AirDays{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"},
		Active:   true,
		Category: agenda.CategoryFixedCalendar,
		TopicCalendar: map[string]string{
			"Lunes": "Audiovisuales",
		},
	}

	if err := db.SaveProgram(ctx, program); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	got, err := db.GetProgram(ctx, "prog-arte")
	if err != nil {
		t.Fatalf("GetProgram failed: %v", err)
	}

	if got.Name != program.Name {
		t.Errorf("Expected name %s, got %s", program.Name, got.Name)
	}
	if got.Category != agenda.CategoryFixedCalendar {
		t.Errorf("Expected category %s, got %s", agenda.CategoryFixedCalendar, got.Category)
	}
	if len(got.Days) != 5 || got.Days[0] != "Lunes" {
		t.Errorf("Unexpected air days %v", got.Days)
	}
	if got.TopicCalendar["Lunes"] != "Audiovisuales" {
		t.Errorf("Unexpected topic calendar %v", got.TopicCalendar)
	}
	if !got.Active {
		t.Error("Expected program to be active")
	}
}

func TestGetProgramNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetProgram(context.Background(), "missing")
	if !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetAllProgramsOrderedByAirTime(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	programs := []*agenda.Program{
		{ID: "p-noon", Name: "Mediodía", Time: "12:00", Active: true, Category: agenda.CategoryGeneral},
		{ID: "p-morning", Name: "Buenos Días", Time: "07:00", Active: true, Category: agenda.CategoryGeneral},
		{ID: "p-evening", Name: "La Vitrola", Time: "20:00", Active: true, Category: agenda.CategoryGeneral},
	}
	if err := db.SaveProgramsBatch(ctx, programs); err != nil {
		t.Fatalf("SaveProgramsBatch failed: %v", err)
	}

	got, err := db.GetAllPrograms(ctx)
	if err != nil {
		t.Fatalf("GetAllPrograms failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 programs, got %d", len(got))
	}
	for i, id := range []string{"p-morning", "p-noon", "p-evening"} {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSearchProgramsByName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	programs := []*agenda.Program{
		{ID: "p1", Name: "RCM Noticias", Active: true, Category: agenda.CategoryNews},
		{ID: "p2", Name: "Noticiero Cultural", Active: true, Category: agenda.CategoryGeneral},
		{ID: "p3", Name: "La Vitrola", Active: true, Category: agenda.CategoryGeneral},
	}
	if err := db.SaveProgramsBatch(ctx, programs); err != nil {
		t.Fatalf("SaveProgramsBatch failed: %v", err)
	}

	got, err := db.SearchProgramsByName(ctx, "Notici")
	if err != nil {
		t.Fatalf("SearchProgramsByName failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(got))
	}

	// LIKE wildcards in the term must be matched literally.
	got, err = db.SearchProgramsByName(ctx, "%")
	if err != nil {
		t.Fatalf("SearchProgramsByName failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected literal %% to match nothing, got %d rows", len(got))
	}
}

func TestDeleteProgramCascadesContent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	program := &agenda.Program{ID: "p1", Name: "Juana y Más", Active: true, Category: agenda.CategoryFixedCalendar}
	if err := db.SaveProgram(ctx, program); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}
	key := agenda.EncodeKey("Octubre", "semana-2", "Lunes")
	if err := db.SaveDailyContent(ctx, "p1", key, agenda.DailyContent{Theme: "tema"}); err != nil {
		t.Fatalf("SaveDailyContent failed: %v", err)
	}

	if err := db.DeleteProgram(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProgram failed: %v", err)
	}

	if _, err := db.GetDailyContent(ctx, "p1", key); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("Expected cascaded content deletion, got %v", err)
	}

	if err := db.DeleteProgram(ctx, "p1"); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDailyContentRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveProgram(ctx, &agenda.Program{ID: "p1", Name: "Test", Active: true, Category: agenda.CategoryGeneral}); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	key := agenda.EncodeKey("Octubre", "semana-1", "Martes")
	content := agenda.DailyContent{Theme: "Soberanía Alimentaria", Ideas: "Entrevista en el agro", Instructions: "Enfoque local"}
	if err := db.SaveDailyContent(ctx, "p1", key, content); err != nil {
		t.Fatalf("SaveDailyContent failed: %v", err)
	}

	got, err := db.GetDailyContent(ctx, "p1", key)
	if err != nil {
		t.Fatalf("GetDailyContent failed: %v", err)
	}
	if *got != content {
		t.Errorf("Expected %+v, got %+v", content, *got)
	}

	// Overwrite replaces the whole row.
	if err := db.SaveDailyContent(ctx, "p1", key, agenda.DailyContent{Theme: "Nuevo"}); err != nil {
		t.Fatalf("SaveDailyContent overwrite failed: %v", err)
	}
	got, err = db.GetDailyContent(ctx, "p1", key)
	if err != nil {
		t.Fatalf("GetDailyContent failed: %v", err)
	}
	if got.Theme != "Nuevo" || got.Ideas != "" {
		t.Errorf("Expected overwritten row, got %+v", got)
	}
}

func TestDeleteContentByPrefixes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveProgram(ctx, &agenda.Program{ID: "p1", Name: "Test", Active: true, Category: agenda.CategoryGeneral}); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	keys := []string{
		"Marzo-semana-2-Lunes",
		"Marzo-semana-2-Viernes",
		"Febrero-semana-2-Lunes",
		"semana-2-Lunes",
	}
	for _, key := range keys {
		if err := db.SaveDailyContent(ctx, "p1", key, agenda.DailyContent{Theme: "x"}); err != nil {
			t.Fatalf("SaveDailyContent failed: %v", err)
		}
	}

	deleted, err := db.DeleteContentByPrefixes(ctx, agenda.WeekKeyPrefixes("Marzo", "semana-2"))
	if err != nil {
		t.Fatalf("DeleteContentByPrefixes failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}

	for _, key := range []string{"Febrero-semana-2-Lunes", "semana-2-Lunes"} {
		if _, err := db.GetDailyContent(ctx, "p1", key); err != nil {
			t.Errorf("Expected %s to survive: %v", key, err)
		}
	}
}

func TestDayThemes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	key := agenda.EncodeKey("Octubre", "semana-2", "Jueves")
	if err := db.SaveDayTheme(ctx, key, "Inicio de las Guerras de Independencia"); err != nil {
		t.Fatalf("SaveDayTheme failed: %v", err)
	}

	theme, err := db.GetDayTheme(ctx, key)
	if err != nil {
		t.Fatalf("GetDayTheme failed: %v", err)
	}
	if theme != "Inicio de las Guerras de Independencia" {
		t.Errorf("Unexpected theme %q", theme)
	}

	if _, err := db.GetDayTheme(ctx, "Octubre-semana-2-Viernes"); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	all, err := db.GetAllDayThemes(ctx)
	if err != nil {
		t.Fatalf("GetAllDayThemes failed: %v", err)
	}
	if len(all) != 1 || all[key] == "" {
		t.Errorf("Unexpected theme map %v", all)
	}
}

func TestEfemerides(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []agenda.Efemeride{
		{Day: 10, Label: "1868", Description: "Inicio de las guerras de independencia."},
		{Day: 10, Label: "Himno", Description: "Se entona el Himno Nacional en Bayamo."},
		{Day: 20, Label: "Día de la Cultura", Description: "Cultura cubana."},
	}
	if err := db.SaveEfemeridesBatch(ctx, "Octubre", events); err != nil {
		t.Fatalf("SaveEfemeridesBatch failed: %v", err)
	}

	got, err := db.GetEfemeridesByMonth(ctx, "Octubre")
	if err != nil {
		t.Fatalf("GetEfemeridesByMonth failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}
	if got[0].Label != "1868" || got[1].Label != "Himno" {
		t.Errorf("Expected insertion order within day, got %v", got)
	}

	// Replace one day, leaving the rest of the month untouched.
	if err := db.ReplaceDayEfemerides(ctx, "Octubre", 10, []agenda.Efemeride{{Day: 10, Label: "Nuevo"}}); err != nil {
		t.Fatalf("ReplaceDayEfemerides failed: %v", err)
	}
	got, err = db.GetEfemeridesByMonth(ctx, "Octubre")
	if err != nil {
		t.Fatalf("GetEfemeridesByMonth failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 events after replacement, got %d", len(got))
	}
	if got[0].Label != "Nuevo" || got[1].Label != "Día de la Cultura" {
		t.Errorf("Unexpected events after replacement: %v", got)
	}

	empty, err := db.GetEfemeridesByMonth(ctx, "Mayo")
	if err != nil {
		t.Fatalf("GetEfemeridesByMonth failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty month, got %v", empty)
	}
}

func TestConmemoraciones(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	comm := agenda.Conmemoracion{Day: 10, National: "Inicio de las Guerras de Independencia"}
	if err := db.SaveConmemoracion(ctx, "Octubre", comm); err != nil {
		t.Fatalf("SaveConmemoracion failed: %v", err)
	}

	// Same (month, day) replaces the record.
	comm.National = "Texto corregido"
	if err := db.SaveConmemoracion(ctx, "Octubre", comm); err != nil {
		t.Fatalf("SaveConmemoracion failed: %v", err)
	}

	got, err := db.GetConmemoracionesByMonth(ctx, "Octubre")
	if err != nil {
		t.Fatalf("GetConmemoracionesByMonth failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 commemoration, got %d", len(got))
	}
	if got[0].National != "Texto corregido" {
		t.Errorf("Expected replacement, got %q", got[0].National)
	}
}

func TestHealthChecks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if err := db.Ready(ctx); err != nil {
		t.Errorf("Ready failed: %v", err)
	}
}

func TestCountPrograms(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	count, err := db.CountPrograms(ctx)
	if err != nil {
		t.Fatalf("CountPrograms failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 programs, got %d", count)
	}

	if err := db.SaveProgram(ctx, &agenda.Program{ID: "p1", Name: "Test", Active: true, Category: agenda.CategoryGeneral}); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	count, err = db.CountPrograms(ctx)
	if err != nil {
		t.Fatalf("CountPrograms failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 program, got %d", count)
	}
}
