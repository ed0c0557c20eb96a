// Package storage persists the station's planning data: the program
// grid, addressed daily content, central day themes and the historical
// calendar records. Repository interfaces decouple the planner and HTTP
// handlers from the SQLite implementation and keep tests cheap.
package storage

import (
	"context"

	"github.com/rcmonumento/agenda-go/internal/agenda"
)

// ProgramRepository defines the interface for program grid operations.
type ProgramRepository interface {
	GetProgram(ctx context.Context, id string) (*agenda.Program, error)
	GetAllPrograms(ctx context.Context) ([]agenda.Program, error)
	SearchProgramsByName(ctx context.Context, name string) ([]agenda.Program, error)
	SaveProgram(ctx context.Context, program *agenda.Program) error
	SaveProgramsBatch(ctx context.Context, programs []*agenda.Program) error
	DeleteProgram(ctx context.Context, id string) error
	CountPrograms(ctx context.Context) (int, error)
}

// ContentRepository defines the interface for addressed daily content.
// Content keys are the three-part form produced by agenda.EncodeKey;
// legacy two-part keys may still exist in old rows and are matched by
// the prefix operations.
type ContentRepository interface {
	GetDailyContent(ctx context.Context, programID, key string) (*agenda.DailyContent, error)
	GetProgramContent(ctx context.Context, programID string) (map[string]agenda.DailyContent, error)
	SaveDailyContent(ctx context.Context, programID, key string, content agenda.DailyContent) error
	DeleteContentByPrefixes(ctx context.Context, prefixes []string) (int, error)
}

// DayThemeRepository defines the interface for the central day themes.
type DayThemeRepository interface {
	GetDayTheme(ctx context.Context, key string) (string, error)
	GetAllDayThemes(ctx context.Context) (agenda.DayThemes, error)
	SaveDayTheme(ctx context.Context, key, theme string) error
	DeleteDayThemesByPrefixes(ctx context.Context, prefixes []string) (int, error)
}

// EventRepository defines the interface for the historical calendar data.
type EventRepository interface {
	GetEfemeridesByMonth(ctx context.Context, month string) ([]agenda.Efemeride, error)
	ReplaceDayEfemerides(ctx context.Context, month string, day int, events []agenda.Efemeride) error
	SaveEfemeridesBatch(ctx context.Context, month string, events []agenda.Efemeride) error
	GetConmemoracionesByMonth(ctx context.Context, month string) ([]agenda.Conmemoracion, error)
	SaveConmemoracion(ctx context.Context, month string, comm agenda.Conmemoracion) error
}

// HealthRepository defines the interface for health check operations.
type HealthRepository interface {
	Ping(ctx context.Context) error
	Ready(ctx context.Context) error
}

// Repository is the aggregate interface combining all repositories.
// The DB type implements it, providing a single entry point for all
// data operations.
type Repository interface {
	ProgramRepository
	ContentRepository
	DayThemeRepository
	EventRepository
	HealthRepository
	Close() error
}

// Ensure DB implements all repository interfaces at compile time.
var (
	_ ProgramRepository  = (*DB)(nil)
	_ ContentRepository  = (*DB)(nil)
	_ DayThemeRepository = (*DB)(nil)
	_ EventRepository    = (*DB)(nil)
	_ HealthRepository   = (*DB)(nil)
	_ Repository         = (*DB)(nil)
)
