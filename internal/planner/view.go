package planner

import (
	"context"
	"fmt"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
)

// ProgramSlot is one program's resolved content for one day.
type ProgramSlot struct {
	ProgramID   string              `json:"program_id"`
	ProgramName string              `json:"program_name"`
	Time        string              `json:"time"`
	Content     agenda.DailyContent `json:"content"`
}

// DaySchedule is one day of the assembled week view.
type DaySchedule struct {
	Day          string             `json:"day"`
	Date         int                `json:"date"`
	CentralTheme string             `json:"central_theme"`
	Events       []agenda.Efemeride `json:"events"`
	Slots        []ProgramSlot      `json:"slots"`
}

// WeekView is the full assembled view of one week, the structure the
// frontend renders and the document export walks in order.
type WeekView struct {
	Month    string          `json:"month"`
	Year     int             `json:"year"`
	Week     agenda.WeekInfo `json:"week"`
	FileCode string          `json:"file_code"`
	Days     []DaySchedule   `json:"days"`
}

// WeekView assembles the complete view for one week: populated days in
// column order, each with its central theme, calendar events and the
// airing programs in air-time order with their resolved content.
func (p *Planner) WeekView(ctx context.Context, monthName, weekID string, year int) (*WeekView, error) {
	month, weeks, err := p.Weeks(monthName, year)
	if err != nil {
		return nil, err
	}
	week, ok := agenda.FindWeek(weeks, weekID)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", domerrors.ErrNotFound, month, weekID)
	}
	if year == 0 {
		year = p.year
	}

	programs, err := p.repo.GetAllPrograms(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := p.eventIndex(ctx, month)
	if err != nil {
		return nil, err
	}
	themes, err := p.repo.GetAllDayThemes(ctx)
	if err != nil {
		return nil, err
	}

	// One content map per program, fetched once for the whole week.
	contentByProgram := make(map[string]map[string]agenda.DailyContent, len(programs))
	for _, program := range programs {
		content, err := p.repo.GetProgramContent(ctx, program.ID)
		if err != nil {
			return nil, err
		}
		contentByProgram[program.ID] = content
	}

	view := &WeekView{
		Month:    month,
		Year:     year,
		Week:     week,
		FileCode: agenda.AgendaFilenameCode(monthNumber(month), week.Start),
	}

	for _, day := range week.PopulatedDays() {
		schedule := DaySchedule{
			Day:          day.Name,
			Date:         day.Date,
			CentralTheme: agenda.ResolveDayTheme(themes, month, weekID, day.Name),
			Events:       idx.EventsOnDay(month, day.Date),
		}

		// Programs arrive ordered by air time; the filter keeps it.
		for _, program := range programs {
			if !program.AirsOn(day.Name) {
				continue
			}
			schedule.Slots = append(schedule.Slots, ProgramSlot{
				ProgramID:   program.ID,
				ProgramName: program.Name,
				Time:        program.Time,
				Content:     agenda.ResolveContent(contentByProgram[program.ID], month, weekID, day.Name),
			})
		}
		view.Days = append(view.Days, schedule)
	}

	return view, nil
}
