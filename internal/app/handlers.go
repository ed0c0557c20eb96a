package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
	"github.com/rcmonumento/agenda-go/internal/planner"
	"github.com/rcmonumento/agenda-go/internal/sentry"
	"github.com/rcmonumento/agenda-go/internal/sliceutil"
)

func (a *Application) rootInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "agenda-go",
		"station": "Radio Ciudad Monumento",
	})
}

// livenessCheck only confirms the process is running; no dependencies.
func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (a *Application) readinessCheck(c *gin.Context) {
	if err := a.db.Ready(c.Request.Context()); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unavailable",
		})
		return
	}

	programCount, _ := a.db.CountPrograms(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"programs": programCount,
		"features": gin.H{
			"ideas_generator": a.planner.IdeasEnabled(),
		},
	})
}

// respondError maps domain errors to HTTP statuses and records the
// error metric. Unexpected errors are reported to Sentry.
func (a *Application) respondError(c *gin.Context, err error) {
	route := c.FullPath()

	var kind string
	var status int
	var validation *domerrors.ValidationError
	switch {
	case errors.As(err, &validation):
		kind, status = "validation", http.StatusBadRequest
	case errors.Is(err, domerrors.ErrNotFound),
		errors.Is(err, domerrors.ErrUnknownProgram):
		kind, status = "not_found", http.StatusNotFound
	case errors.Is(err, domerrors.ErrUnknownMonth),
		errors.Is(err, domerrors.ErrUnknownWeekday),
		errors.Is(err, domerrors.ErrInvalidInput):
		kind, status = "validation", http.StatusBadRequest
	case errors.Is(err, domerrors.ErrNoData):
		kind, status = "no_data", http.StatusUnprocessableEntity
	default:
		kind, status = "internal", http.StatusInternalServerError
		a.logger.WithError(err).WithField("route", route).Error("Request handling failed")
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
	}

	if a.metrics != nil {
		a.metrics.HTTPErrorsTotal.WithLabelValues(kind, route).Inc()
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// listWeeks returns the calendar decomposition of one month.
func (a *Application) listWeeks(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}

	month, weeks, err := a.planner.Weeks(c.Param("month"), year)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"year":  year,
		"weeks": weeks,
	})
}

// yearQuery reads the optional ?year override; 0 means the configured
// planning year.
func (a *Application) yearQuery(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return 0, false
	}
	return year, true
}

func (a *Application) generateWeek(c *gin.Context) {
	year, ok := a.yearQuery(c)
	if !ok {
		return
	}

	result, err := a.planner.GenerateWeek(c.Request.Context(), c.Param("month"), c.Param("week"), year)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *Application) importWeek(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	applied, err := a.planner.Import(c.Request.Context(), c.Param("month"), c.Param("week"), string(body))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applied": applied,
		"message": strconv.Itoa(applied) + " changes applied",
	})
}

func (a *Application) clearWeek(c *gin.Context) {
	contentDeleted, themesDeleted, err := a.planner.ClearWeek(c.Request.Context(), c.Param("month"), c.Param("week"))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content_deleted": contentDeleted,
		"themes_deleted":  themesDeleted,
	})
}

func (a *Application) weekView(c *gin.Context) {
	year, ok := a.yearQuery(c)
	if !ok {
		return
	}

	view, err := a.planner.WeekView(c.Request.Context(), c.Param("month"), c.Param("week"), year)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *Application) setDayTheme(c *gin.Context) {
	var body struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}

	err := a.planner.SetDayTheme(c.Request.Context(), c.Param("month"), c.Param("week"), c.Param("day"), body.Theme)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": body.Theme})
}

func (a *Application) listPrograms(c *gin.Context) {
	var (
		programs []agenda.Program
		err      error
	)
	if q := c.Query("q"); q != "" {
		programs, err = a.db.SearchProgramsByName(c.Request.Context(), q)
	} else {
		programs, err = a.db.GetAllPrograms(c.Request.Context())
	}
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (a *Application) createProgram(c *gin.Context) {
	var program agenda.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if program.Name == "" {
		a.respondError(c, domerrors.NewValidationError("name", "is required"))
		return
	}
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	if program.Category == "" {
		program.Category = agenda.CategoryGeneral
	}
	if !agenda.ValidCategory(program.Category) {
		a.respondError(c, domerrors.NewValidationError("category", "unknown category "+string(program.Category)))
		return
	}

	if err := a.db.SaveProgram(c.Request.Context(), &program); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (a *Application) updateProgram(c *gin.Context) {
	id := c.Param("id")
	if _, err := a.db.GetProgram(c.Request.Context(), id); err != nil {
		a.respondError(c, err)
		return
	}

	var program agenda.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	program.ID = id
	if program.Category != "" && !agenda.ValidCategory(program.Category) {
		a.respondError(c, domerrors.NewValidationError("category", "unknown category "+string(program.Category)))
		return
	}
	if program.Category == "" {
		program.Category = agenda.CategoryGeneral
	}

	if err := a.db.SaveProgram(c.Request.Context(), &program); err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (a *Application) deleteProgram(c *gin.Context) {
	if err := a.db.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseContentKey splits a three-part content key into its components.
// The week id carries an inner dash, so the month is everything before
// the first separator and the day everything after the last.
func parseContentKey(key string) (month, weekID, day string, ok bool) {
	first := strings.Index(key, "-")
	last := strings.LastIndex(key, "-")
	if first <= 0 || last <= first+1 || last >= len(key)-1 {
		return "", "", "", false
	}
	return key[:first], key[first+1 : last], key[last+1:], true
}

func (a *Application) updateContent(c *gin.Context) {
	month, weekID, day, ok := parseContentKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed content key"})
		return
	}

	var patch planner.ContentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := a.planner.UpdateContent(c.Request.Context(), c.Param("id"), month, weekID, day, patch)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (a *Application) getEvents(c *gin.Context) {
	month, ok := agenda.ParseMonth(c.Param("month"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown month " + c.Param("month")})
		return
	}

	efemerides, err := a.db.GetEfemeridesByMonth(c.Request.Context(), month)
	if err != nil {
		a.respondError(c, err)
		return
	}
	conmemoraciones, err := a.db.GetConmemoracionesByMonth(c.Request.Context(), month)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":           month,
		"efemerides":      efemerides,
		"conmemoraciones": conmemoraciones,
	})
}

// efemerideIdentity is the dedupe key: a day may hold many efemérides,
// but never two identical ones.
func efemerideIdentity(e agenda.Efemeride) string {
	return strconv.Itoa(e.Day) + "|" + e.Label + "|" + e.Description
}

// putEvents appends new efemérides to one month's list and upserts the
// conmemoraciones per (month, day). The efeméride list is append-only;
// entries identical to an already stored one are skipped.
func (a *Application) putEvents(c *gin.Context) {
	month, ok := agenda.ParseMonth(c.Param("month"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown month " + c.Param("month")})
		return
	}

	var body struct {
		Efemerides      []agenda.Efemeride     `json:"efemerides"`
		Conmemoraciones []agenda.Conmemoracion `json:"conmemoraciones"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, e := range body.Efemerides {
		if e.Day < 1 || e.Day > 31 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "efeméride day out of range"})
			return
		}
	}
	body.Efemerides = sliceutil.Deduplicate(body.Efemerides, efemerideIdentity)

	existing, err := a.db.GetEfemeridesByMonth(c.Request.Context(), month)
	if err != nil {
		a.respondError(c, err)
		return
	}
	stored := make(map[string]bool, len(existing))
	for _, e := range existing {
		stored[efemerideIdentity(e)] = true
	}
	fresh := make([]agenda.Efemeride, 0, len(body.Efemerides))
	for _, e := range body.Efemerides {
		if !stored[efemerideIdentity(e)] {
			fresh = append(fresh, e)
		}
	}
	if err := a.db.SaveEfemeridesBatch(c.Request.Context(), month, fresh); err != nil {
		a.respondError(c, err)
		return
	}

	for _, comm := range body.Conmemoraciones {
		if comm.Day < 1 || comm.Day > 31 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conmemoración day out of range"})
			return
		}
		if err := a.db.SaveConmemoracion(c.Request.Context(), month, comm); err != nil {
			a.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"month":           month,
		"efemerides":      len(fresh),
		"conmemoraciones": len(body.Conmemoraciones),
	})
}

func (a *Application) generateIdeas(c *gin.Context) {
	if !a.planner.IdeasEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ideas generator not configured"})
		return
	}

	var body struct {
		ProgramID string `json:"program_id" binding:"required"`
		Month     string `json:"month" binding:"required"`
		WeekID    string `json:"week_id" binding:"required"`
		Day       string `json:"day" binding:"required"`
		Year      int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), a.cfg.LLMTimeout)
	defer cancel()

	ideas, err := a.planner.GenerateIdeas(ctx, body.ProgramID, body.Month, body.WeekID, body.Day, body.Year)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}
