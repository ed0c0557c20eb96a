package backup

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

func setupManager(t *testing.T) (*Manager, *storage.DB, string) {
	t.Helper()
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	log := logger.NewWithWriter("error", io.Discard)
	return NewManager(db, dir, 3, log), db, dir
}

func seedPlanningData(t *testing.T, db *storage.DB) {
	t.Helper()
	ctx := context.Background()

	program := &agenda.Program{
		ID:       "prog-1",
		Name:     "Arte Bayamo",
		Time:     "14:00",
		Days:     agenda.AirDays{"Lunes"},
		Active:   true,
		Category: agenda.CategoryFixedCalendar,
	}
	if err := db.SaveProgram(ctx, program); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	key := agenda.EncodeKey("Octubre", "semana-2", "Lunes")
	if err := db.SaveDailyContent(ctx, "prog-1", key, agenda.DailyContent{Theme: "Literatura", Ideas: "- entrevista"}); err != nil {
		t.Fatalf("SaveDailyContent failed: %v", err)
	}
	if err := db.SaveDayTheme(ctx, key, "Historia: 1868"); err != nil {
		t.Fatalf("SaveDayTheme failed: %v", err)
	}
	if err := db.SaveEfemeridesBatch(ctx, "Octubre", []agenda.Efemeride{{Day: 10, Label: "1868", Description: "Céspedes"}}); err != nil {
		t.Fatalf("SaveEfemeridesBatch failed: %v", err)
	}
	if err := db.SaveConmemoracion(ctx, "Octubre", agenda.Conmemoracion{Day: 10, National: "Inicio de las Guerras"}); err != nil {
		t.Fatalf("SaveConmemoracion failed: %v", err)
	}
}

func TestRunAndReadSnapshot(t *testing.T) {
	m, db, _ := setupManager(t)
	seedPlanningData(t, db)

	path, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	if len(snap.Programs) != 1 || snap.Programs[0].ID != "prog-1" {
		t.Fatalf("Unexpected programs %+v", snap.Programs)
	}
	key := agenda.EncodeKey("Octubre", "semana-2", "Lunes")
	if snap.Programs[0].DailyData[key].Theme != "Literatura" {
		t.Errorf("Expected daily content in snapshot, got %+v", snap.Programs[0].DailyData)
	}
	if snap.DayThemes[key] != "Historia: 1868" {
		t.Errorf("Expected day theme in snapshot, got %v", snap.DayThemes)
	}
	if len(snap.Efemerides["Octubre"]) != 1 {
		t.Errorf("Expected efemérides in snapshot, got %v", snap.Efemerides)
	}
	if len(snap.Conmemoraciones["Octubre"]) != 1 {
		t.Errorf("Expected conmemoraciones in snapshot, got %v", snap.Conmemoraciones)
	}
}

func TestRestoreIntoEmptyDatabase(t *testing.T) {
	m, db, dir := setupManager(t)
	seedPlanningData(t, db)

	path, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Fresh database restored from the snapshot file.
	db2, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("Failed to create second database: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })

	m2 := NewManager(db2, dir, 3, logger.NewWithWriter("error", io.Discard))
	if err := m2.Restore(context.Background(), path); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	program, err := db2.GetProgram(context.Background(), "prog-1")
	if err != nil {
		t.Fatalf("GetProgram after restore failed: %v", err)
	}
	if program.Name != "Arte Bayamo" {
		t.Errorf("Unexpected restored program %+v", program)
	}

	key := agenda.EncodeKey("Octubre", "semana-2", "Lunes")
	content, err := db2.GetDailyContent(context.Background(), "prog-1", key)
	if err != nil {
		t.Fatalf("GetDailyContent after restore failed: %v", err)
	}
	if content.Ideas != "- entrevista" {
		t.Errorf("Expected restored ideas, got %+v", content)
	}

	theme, err := db2.GetDayTheme(context.Background(), key)
	if err != nil || theme != "Historia: 1868" {
		t.Errorf("Expected restored day theme, got %q (%v)", theme, err)
	}

	events, err := db2.GetEfemeridesByMonth(context.Background(), "Octubre")
	if err != nil || len(events) != 1 {
		t.Errorf("Expected restored efemérides, got %v (%v)", events, err)
	}
}

func TestPruneKeepsRetention(t *testing.T) {
	m, db, dir := setupManager(t)
	seedPlanningData(t, db)
	ctx := context.Background()

	// Retention is 3; write 5 snapshots with forced distinct names.
	for i := 0; i < 5; i++ {
		snap, err := m.assemble(ctx)
		if err != nil {
			t.Fatalf("assemble failed: %v", err)
		}
		name := filepath.Join(dir, "agenda-2026010"+string(rune('0'+i))+"-000000"+snapshotExt)
		if err := writeSnapshot(name, snap); err != nil {
			t.Fatalf("writeSnapshot failed: %v", err)
		}
	}

	pruned, err := m.prune()
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if pruned != 2 {
		t.Errorf("Expected 2 pruned snapshots, got %d", pruned)
	}

	files, err := m.snapshotFiles()
	if err != nil {
		t.Fatalf("snapshotFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 surviving snapshots, got %d", len(files))
	}

	latest, err := m.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if filepath.Base(latest) != "agenda-20260104-000000"+snapshotExt {
		t.Errorf("Unexpected latest snapshot %s", latest)
	}
}

func TestLatestEmptyDir(t *testing.T) {
	m, _, _ := setupManager(t)

	latest, err := m.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Expected empty path, got %s", latest)
	}
}
