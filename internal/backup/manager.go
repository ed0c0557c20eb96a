// Package backup writes periodic compressed snapshots of the planning
// data (program grid, daily content, day themes and calendar records) to
// local disk, and can restore a database from one.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

const snapshotExt = ".json.zst"

// Snapshot is the serialized planning state.
type Snapshot struct {
	CreatedAt       time.Time                  `json:"created_at"`
	Programs        []agenda.Program           `json:"programs"`
	DayThemes       agenda.DayThemes           `json:"day_themes"`
	Efemerides      agenda.EfemeridesData      `json:"efemerides"`
	Conmemoraciones agenda.ConmemoracionesData `json:"conmemoraciones"`
}

// Manager assembles, writes and restores snapshots.
type Manager struct {
	repo      storage.Repository
	dir       string
	retention int
	log       *logger.Logger
}

// NewManager creates a snapshot manager writing to dir, keeping at most
// retention snapshot files.
func NewManager(repo storage.Repository, dir string, retention int, log *logger.Logger) *Manager {
	if retention < 1 {
		retention = 1
	}
	return &Manager{
		repo:      repo,
		dir:       dir,
		retention: retention,
		log:       log.WithModule("backup"),
	}
}

// Run assembles the current state, writes one compressed snapshot file
// and prunes old ones. Returns the path of the written file.
func (m *Manager) Run(ctx context.Context) (string, error) {
	snap, err := m.assemble(ctx)
	if err != nil {
		return "", fmt.Errorf("assemble snapshot: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := "agenda-" + snap.CreatedAt.UTC().Format("20060102-150405") + snapshotExt
	path := filepath.Join(m.dir, name)
	if err := writeSnapshot(path, snap); err != nil {
		return "", err
	}

	pruned, err := m.prune()
	if err != nil {
		m.log.WithError(err).Warn("pruning old snapshots failed")
	}

	m.log.Info("snapshot written",
		"path", path,
		"programs", len(snap.Programs),
		"pruned", pruned)
	return path, nil
}

// Restore loads a snapshot file and writes its contents back into the
// repository. Existing rows with the same keys are replaced; rows absent
// from the snapshot are left alone.
func (m *Manager) Restore(ctx context.Context, path string) error {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return err
	}

	programs := make([]*agenda.Program, len(snap.Programs))
	for i := range snap.Programs {
		programs[i] = &snap.Programs[i]
	}
	if err := m.repo.SaveProgramsBatch(ctx, programs); err != nil {
		return fmt.Errorf("restore programs: %w", err)
	}

	for _, p := range snap.Programs {
		for key, content := range p.DailyData {
			if err := m.repo.SaveDailyContent(ctx, p.ID, key, content); err != nil {
				return fmt.Errorf("restore content for %s: %w", p.ID, err)
			}
		}
	}

	for key, theme := range snap.DayThemes {
		if err := m.repo.SaveDayTheme(ctx, key, theme); err != nil {
			return fmt.Errorf("restore day themes: %w", err)
		}
	}

	for month, events := range snap.Efemerides {
		byDay := make(map[int][]agenda.Efemeride)
		for _, e := range events {
			byDay[e.Day] = append(byDay[e.Day], e)
		}
		for day, dayEvents := range byDay {
			if err := m.repo.ReplaceDayEfemerides(ctx, month, day, dayEvents); err != nil {
				return fmt.Errorf("restore efemerides for %s: %w", month, err)
			}
		}
	}

	for month, comms := range snap.Conmemoraciones {
		for _, c := range comms {
			if err := m.repo.SaveConmemoracion(ctx, month, c); err != nil {
				return fmt.Errorf("restore conmemoraciones for %s: %w", month, err)
			}
		}
	}

	m.log.Info("snapshot restored", "path", path, "programs", len(snap.Programs))
	return nil
}

// Latest returns the path of the newest snapshot file, or "" when none
// exists.
func (m *Manager) Latest() (string, error) {
	files, err := m.snapshotFiles()
	if err != nil || len(files) == 0 {
		return "", err
	}
	return filepath.Join(m.dir, files[len(files)-1]), nil
}

func (m *Manager) assemble(ctx context.Context) (*Snapshot, error) {
	programs, err := m.repo.GetAllPrograms(ctx)
	if err != nil {
		return nil, err
	}
	for i := range programs {
		content, err := m.repo.GetProgramContent(ctx, programs[i].ID)
		if err != nil {
			return nil, err
		}
		programs[i].DailyData = content
	}

	themes, err := m.repo.GetAllDayThemes(ctx)
	if err != nil {
		return nil, err
	}

	efemerides := make(agenda.EfemeridesData)
	conmemoraciones := make(agenda.ConmemoracionesData)
	for _, month := range agenda.MonthNames {
		events, err := m.repo.GetEfemeridesByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		if len(events) > 0 {
			efemerides[month] = events
		}
		comms, err := m.repo.GetConmemoracionesByMonth(ctx, month)
		if err != nil {
			return nil, err
		}
		if len(comms) > 0 {
			conmemoraciones[month] = comms
		}
	}

	return &Snapshot{
		CreatedAt:       time.Now(),
		Programs:        programs,
		DayThemes:       themes,
		Efemerides:      efemerides,
		Conmemoraciones: conmemoraciones,
	}, nil
}

// prune deletes the oldest snapshots beyond the retention count and
// returns how many were removed.
func (m *Manager) prune() (int, error) {
	files, err := m.snapshotFiles()
	if err != nil {
		return 0, err
	}
	if len(files) <= m.retention {
		return 0, nil
	}

	excess := files[:len(files)-m.retention]
	for _, name := range excess {
		if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
			return 0, fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return len(excess), nil
}

// snapshotFiles lists snapshot filenames sorted oldest first. The
// timestamped naming makes lexical order chronological.
func (m *Manager) snapshotFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), snapshotExt) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func writeSnapshot(path string, snap *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	if err := json.NewEncoder(encoder).Encode(snap); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close zstd encoder: %w", err)
	}
	return nil
}

// ReadSnapshot loads and decompresses a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer func() { _ = file.Close() }()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var snap Snapshot
	if err := json.NewDecoder(io.Reader(decoder)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
