// Package planner orchestrates the editorial engine over the persistent
// store: week generation, content resolution, bulk imports, manual edits
// and the assembled week view. The pure calendar and rule logic lives in
// internal/agenda; this package wires it to storage, metrics and the
// ideas generator.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
	"github.com/rcmonumento/agenda-go/internal/genai"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/metrics"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

// Planner coordinates the planning operations.
type Planner struct {
	repo    storage.Repository
	ideas   genai.IdeasGenerator // nil when no LLM provider is configured
	metrics *metrics.Metrics
	log     *logger.Logger
	year    int
}

// New creates a planner. The ideas generator may be nil.
func New(repo storage.Repository, ideas genai.IdeasGenerator, m *metrics.Metrics, log *logger.Logger, year int) *Planner {
	return &Planner{
		repo:    repo,
		ideas:   ideas,
		metrics: m,
		log:     log.WithModule("planner"),
		year:    year,
	}
}

// Year returns the calendar year the planner generates against.
func (p *Planner) Year() int {
	return p.year
}

// IdeasEnabled reports whether an LLM ideas generator is configured.
func (p *Planner) IdeasEnabled() bool {
	return p.ideas != nil
}

// Weeks returns the calendar weeks of a month, resolving the month name
// and applying the year override when given (0 = configured year).
func (p *Planner) Weeks(monthName string, year int) (string, []agenda.WeekInfo, error) {
	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}
	if year == 0 {
		year = p.year
	}
	return month, agenda.WeeksInMonth(year, monthNumber(month)), nil
}

// GenerateResult summarizes one week generation.
type GenerateResult struct {
	Month        string            `json:"month"`
	WeekID       string            `json:"week_id"`
	Themes       map[string]string `json:"themes"`
	ContentCount int               `json:"content_count"`
}

// GenerateWeek runs the full auto-assignment for one week: central
// themes for the weekdays, then per-program content for every populated
// day. Generated content overwrites what was there, ideas included; the
// operation is the editorial reset for the week.
func (p *Planner) GenerateWeek(ctx context.Context, monthName, weekID string, year int) (*GenerateResult, error) {
	start := time.Now()

	month, weeks, err := p.Weeks(monthName, year)
	if err != nil {
		return nil, err
	}
	week, ok := agenda.FindWeek(weeks, weekID)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", domerrors.ErrNotFound, month, weekID)
	}

	programs, err := p.repo.GetAllPrograms(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := p.eventIndex(ctx, month)
	if err != nil {
		return nil, err
	}

	themes := agenda.AssignWeekThemes(week, month, idx)
	for day, theme := range themes {
		key := agenda.EncodeKey(month, weekID, day)
		if err := p.repo.SaveDayTheme(ctx, key, theme); err != nil {
			p.recordGeneration(month, "error", start)
			return nil, err
		}
		p.recordThemeSource(month, theme, idx, week, day)
	}

	contentCount := 0
	for _, day := range week.PopulatedDays() {
		centralTheme := themes[day.Name]
		for i := range programs {
			program := programs[i]
			if !program.AirsOn(day.Name) {
				continue
			}
			content := agenda.GenerateProgramContent(program, day, centralTheme, month, idx)
			key := agenda.EncodeKey(month, weekID, day.Name)
			if err := p.repo.SaveDailyContent(ctx, program.ID, key, content); err != nil {
				p.recordGeneration(month, "error", start)
				return nil, err
			}
			contentCount++
		}
	}

	p.recordGeneration(month, "success", start)
	p.log.Info("week generated",
		"month", month,
		"week", weekID,
		"themes", len(themes),
		"content_entries", contentCount)

	return &GenerateResult{
		Month:        month,
		WeekID:       weekID,
		Themes:       themes,
		ContentCount: contentCount,
	}, nil
}

// ClearWeek deletes every content entry and day theme of one week,
// honoring the legacy-key guard. Returns the deleted row counts.
func (p *Planner) ClearWeek(ctx context.Context, monthName, weekID string) (contentDeleted, themesDeleted int, err error) {
	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}

	prefixes := agenda.WeekKeyPrefixes(month, weekID)
	contentDeleted, err = p.repo.DeleteContentByPrefixes(ctx, prefixes)
	if err != nil {
		return 0, 0, err
	}
	themesDeleted, err = p.repo.DeleteDayThemesByPrefixes(ctx, prefixes)
	if err != nil {
		return contentDeleted, 0, err
	}

	p.log.Info("week cleared",
		"month", month,
		"week", weekID,
		"content_deleted", contentDeleted,
		"themes_deleted", themesDeleted)
	return contentDeleted, themesDeleted, nil
}

// SetDayTheme manually overrides the central theme for one day. The key
// always lands in current form.
func (p *Planner) SetDayTheme(ctx context.Context, monthName, weekID, dayName, theme string) error {
	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}
	day, ok := agenda.CanonicalWeekday(dayName)
	if !ok {
		return fmt.Errorf("%w: %q", domerrors.ErrUnknownWeekday, dayName)
	}
	return p.repo.SaveDayTheme(ctx, agenda.EncodeKey(month, weekID, day), theme)
}

// ContentPatch is a partial edit of one content entry. Nil fields keep
// the stored value.
type ContentPatch struct {
	Theme        *string `json:"theme"`
	Ideas        *string `json:"ideas"`
	Instructions *string `json:"instructions"`
}

// UpdateContent applies a manual partial edit to one program slot.
// Reads resolve legacy keys; the write always lands on the current-form
// key, migrating the entry forward.
func (p *Planner) UpdateContent(ctx context.Context, programID, monthName, weekID, dayName string, patch ContentPatch) (*agenda.DailyContent, error) {
	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}
	day, ok := agenda.CanonicalWeekday(dayName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domerrors.ErrUnknownWeekday, dayName)
	}
	if _, err := p.repo.GetProgram(ctx, programID); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", domerrors.ErrUnknownProgram, programID)
		}
		return nil, err
	}

	content, err := p.resolveContent(ctx, programID, month, weekID, day)
	if err != nil {
		return nil, err
	}

	if patch.Theme != nil {
		content.Theme = *patch.Theme
	}
	if patch.Ideas != nil {
		content.Ideas = *patch.Ideas
	}
	if patch.Instructions != nil {
		content.Instructions = *patch.Instructions
	}

	key := agenda.EncodeKey(month, weekID, day)
	if err := p.repo.SaveDailyContent(ctx, programID, key, content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Import parses the bulk-import text for one week and applies the
// resulting mutations. Program theme and ideas writes preserve the
// fields the import does not carry. Returns the applied-field count;
// ErrNoData when nothing bound.
func (p *Planner) Import(ctx context.Context, monthName, weekID, text string) (int, error) {
	start := time.Now()

	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return 0, fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}
	programs, err := p.repo.GetAllPrograms(ctx)
	if err != nil {
		return 0, err
	}

	result := agenda.ImportWeekText(text, month, weekID, programs)
	if result.Applied == 0 {
		p.recordImport("empty", 0, start)
		return 0, domerrors.ErrNoData
	}

	for _, m := range result.Mutations {
		if err := p.applyMutation(ctx, m); err != nil {
			p.recordImport("error", 0, start)
			return 0, err
		}
	}

	p.recordImport("applied", result.Applied, start)
	p.log.Info("import applied",
		"month", month,
		"week", weekID,
		"fields", result.Applied,
		"mutations", len(result.Mutations))
	return result.Applied, nil
}

func (p *Planner) applyMutation(ctx context.Context, m agenda.Mutation) error {
	switch m.Kind {
	case agenda.MutationDayTheme:
		return p.repo.SaveDayTheme(ctx, m.Key, m.Value)

	case agenda.MutationProgramTheme:
		content, err := p.storedContent(ctx, m.ProgramID, m.Key)
		if err != nil {
			return err
		}
		content.Theme = m.Value
		return p.repo.SaveDailyContent(ctx, m.ProgramID, m.Key, content)

	case agenda.MutationProgramIdeas:
		content, err := p.storedContent(ctx, m.ProgramID, m.Key)
		if err != nil {
			return err
		}
		content.Ideas = m.Value
		return p.repo.SaveDailyContent(ctx, m.ProgramID, m.Key, content)

	default:
		return fmt.Errorf("%w: mutation kind %q", domerrors.ErrInvalidInput, m.Kind)
	}
}

// GenerateIdeas fills one slot's ideas field through the LLM generator
// and persists the result. The theme and instructions are untouched.
// The year override (0 = configured year) keeps the cited efemérides on
// the same calendar the week was generated against.
func (p *Planner) GenerateIdeas(ctx context.Context, programID, monthName, weekID, dayName string, year int) (string, error) {
	if p.ideas == nil {
		return "", errors.New("ideas generator not configured")
	}

	month, ok := agenda.ParseMonth(monthName)
	if !ok {
		return "", fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, monthName)
	}
	day, ok := agenda.CanonicalWeekday(dayName)
	if !ok {
		return "", fmt.Errorf("%w: %q", domerrors.ErrUnknownWeekday, dayName)
	}

	program, err := p.repo.GetProgram(ctx, programID)
	if err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			return "", fmt.Errorf("%w: %q", domerrors.ErrUnknownProgram, programID)
		}
		return "", err
	}
	content, err := p.resolveContent(ctx, programID, month, weekID, day)
	if err != nil {
		return "", err
	}
	idx, err := p.eventIndex(ctx, month)
	if err != nil {
		return "", err
	}

	date := p.dateForDay(month, weekID, day, year)
	var labels []string
	if date > 0 {
		for _, e := range idx.EventsOnDay(month, date) {
			labels = append(labels, e.Label)
		}
	}

	start := time.Now()
	ideas, err := p.ideas.Generate(ctx, genai.IdeasRequest{
		ProgramName:  program.Name,
		DayName:      day,
		Month:        month,
		Theme:        content.Theme,
		Instructions: content.Instructions,
		Events:       labels,
	})
	p.recordIdeas(err, start)
	if err != nil {
		return "", fmt.Errorf("generate ideas: %w", err)
	}
	if ideas == "" {
		return "", nil
	}

	content.Ideas = ideas
	key := agenda.EncodeKey(month, weekID, day)
	if err := p.repo.SaveDailyContent(ctx, programID, key, content); err != nil {
		return "", err
	}
	return ideas, nil
}

// resolveContent reads a slot with the legacy-key fallback applied.
// Missing entries resolve to the zero content, not an error.
func (p *Planner) resolveContent(ctx context.Context, programID, month, weekID, day string) (agenda.DailyContent, error) {
	data, err := p.repo.GetProgramContent(ctx, programID)
	if err != nil {
		return agenda.DailyContent{}, err
	}
	return agenda.ResolveContent(data, month, weekID, day), nil
}

// storedContent reads exactly one key, treating a missing row as zero
// content. Import writes target current-form keys only.
func (p *Planner) storedContent(ctx context.Context, programID, key string) (agenda.DailyContent, error) {
	content, err := p.repo.GetDailyContent(ctx, programID, key)
	if errors.Is(err, domerrors.ErrNotFound) {
		return agenda.DailyContent{}, nil
	}
	if err != nil {
		return agenda.DailyContent{}, err
	}
	return *content, nil
}

// eventIndex loads one month's calendar records into a lookup index.
func (p *Planner) eventIndex(ctx context.Context, month string) (*agenda.EventIndex, error) {
	events, err := p.repo.GetEfemeridesByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	comms, err := p.repo.GetConmemoracionesByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return agenda.NewEventIndex(
		agenda.EfemeridesData{month: events},
		agenda.ConmemoracionesData{month: comms},
	), nil
}

// dateForDay finds the day-of-month for a (week, weekday) pair, or 0
// when the slot is outside the month. A zero year means the configured
// planner year.
func (p *Planner) dateForDay(month, weekID, day string, year int) int {
	if year == 0 {
		year = p.year
	}
	weeks := agenda.WeeksInMonth(year, monthNumber(month))
	week, ok := agenda.FindWeek(weeks, weekID)
	if !ok {
		return 0
	}
	for _, d := range week.PopulatedDays() {
		if d.Name == day {
			return d.Date
		}
	}
	return 0
}

func monthNumber(month string) time.Month {
	idx := slices.Index(agenda.MonthNames[:], month)
	return time.Month(idx + 1)
}

func (p *Planner) recordGeneration(month, status string, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.GenerationsTotal.WithLabelValues(month, status).Inc()
	p.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
}

func (p *Planner) recordImport(status string, applied int, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ImportsTotal.WithLabelValues(status).Inc()
	p.metrics.ImportMutationsTotal.Add(float64(applied))
	p.metrics.ImportDurationSeconds.Observe(time.Since(start).Seconds())
}

func (p *Planner) recordIdeas(err error, start time.Time) {
	if p.metrics == nil || p.ideas == nil {
		return
	}
	provider := p.ideas.Provider().String()
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.IdeasRequestsTotal.WithLabelValues(provider, status).Inc()
	p.metrics.IdeasDurationSeconds.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// recordThemeSource classifies how a day got its theme, for metrics.
func (p *Planner) recordThemeSource(month, theme string, idx *agenda.EventIndex, week agenda.WeekInfo, day string) {
	if p.metrics == nil {
		return
	}

	source := "mandatory"
	switch {
	case theme == agenda.FallbackTheme:
		source = "fallback"
	case strings.HasPrefix(theme, "Historia: "):
		source = "history"
	case p.isCommemoration(month, theme, idx, week, day):
		source = "commemoration"
	}
	p.metrics.ThemesAssignedTotal.WithLabelValues(source).Inc()
}

func (p *Planner) isCommemoration(month, theme string, idx *agenda.EventIndex, week agenda.WeekInfo, day string) bool {
	for _, d := range week.PopulatedDays() {
		if d.Name != day {
			continue
		}
		if comm := idx.CommemorationOnDay(month, d.Date); comm != nil && comm.National == theme {
			return true
		}
	}
	return false
}
