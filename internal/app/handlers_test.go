package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/rcmonumento/agenda-go/internal/config"
	"github.com/rcmonumento/agenda-go/internal/data"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/metrics"
	"github.com/rcmonumento/agenda-go/internal/planner"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

// newTestApp assembles an application over an in-memory database with
// the station grid seeded. The ideas generator stays disabled.
func newTestApp(t *testing.T) (*Application, *gin.Engine) {
	t.Helper()

	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.NewWithWriter("error", io.Discard)
	if err := data.Seed(context.Background(), db, log); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	cfg := &config.Config{
		Port:       "8080",
		LogLevel:   "error",
		Year:       2024,
		LLMTimeout: 5 * time.Second,
	}

	app := &Application{
		cfg:      cfg,
		logger:   log,
		db:       db,
		metrics:  m,
		registry: registry,
		planner:  planner.New(db, nil, m, log, 2024),
	}

	router := gin.New()
	app.registerRoutes(router)
	return app, router
}

func doRequest(router *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	return doRequest(router, method, path, "application/json", body)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthEndpoints(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agenda-go")

	w = doJSON(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")

	w = doJSON(router, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, float64(16), body["programs"])
}

func TestListWeeks(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/v1/calendar/2024/Octubre/weeks", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Octubre", body["month"])
	weeks, ok := body["weeks"].([]any)
	assert.True(t, ok)
	assert.Len(t, weeks, 5)

	first := weeks[0].(map[string]any)
	assert.Equal(t, "semana-1", first["id"])
}

func TestListWeeksRejectsBadInput(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/v1/calendar/abcd/Octubre/weeks", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/calendar/2024/Frimaire/weeks", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateWeekEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-2/generate?year=2024", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Octubre", body["month"])
	assert.Equal(t, "semana-2", body["week_id"])
	assert.Greater(t, body["content_count"], float64(0))

	themes, ok := body["themes"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Inicio de las Guerras de Independencia", themes["Jueves"])
}

func TestGenerateWeekUnknownWeek(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-9/generate?year=2024", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeekViewEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-2/generate?year=2024", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/agenda/Octubre/weeks/semana-2?year=2024", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Agenda1001", body["file_code"])
	days, ok := body["days"].([]any)
	assert.True(t, ok)
	assert.Len(t, days, 7)
}

func TestClearWeekEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	doJSON(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-2/generate?year=2024", "")

	w := doJSON(router, http.MethodDelete, "/api/v1/agenda/Octubre/weeks/semana-2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Greater(t, body["content_deleted"], float64(0))
	assert.Equal(t, float64(5), body["themes_deleted"])
}

func TestImportWeekEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	text := "**DÍA: LUNES**\n" +
		"Temática del día: Historia Local\n" +
		"Programa: Noticiero\n" +
		"Temática: Cobertura especial\n" +
		"Ideas:\n" +
		"- Entrevista en la plaza\n"

	w := doRequest(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-2/import", "text/plain", text)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["applied"])
}

func TestImportWeekNoData(t *testing.T) {
	_, router := newTestApp(t)

	w := doRequest(router, http.MethodPost, "/api/v1/agenda/Octubre/weeks/semana-2/import", "text/plain", "nada que importar")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "no valid data found")
}

func TestSetDayThemeEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPut, "/api/v1/agenda/Octubre/weeks/semana-2/days/Lunes/theme",
		`{"theme":"Aniversario de la Ciudad"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/agenda/Octubre/weeks/semana-2/days/Lunes/theme", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/agenda/Octubre/weeks/semana-2/days/Blursday/theme",
		`{"theme":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgramLifecycle(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/programs",
		`{"name":"La Tertulia","time":"16:00","days":["Lunes","Miércoles"],"active":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	created := decodeBody(t, w)
	id, _ := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "general", created["category"])

	w = doJSON(router, http.MethodPut, "/api/v1/programs/"+id,
		`{"name":"La Tertulia Nocturna","time":"21:00","days":["Lunes"],"active":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "La Tertulia Nocturna", updated["name"])
	assert.Equal(t, id, updated["id"])

	w = doJSON(router, http.MethodGet, "/api/v1/programs?q=tertulia", "")
	assert.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody(t, w)
	programs, ok := listed["programs"].([]any)
	assert.True(t, ok)
	assert.Len(t, programs, 1)

	w = doJSON(router, http.MethodDelete, "/api/v1/programs/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateProgramValidation(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/programs", `{"time":"16:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name")

	w = doJSON(router, http.MethodPost, "/api/v1/programs",
		`{"name":"X","category":"telenovela"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category")
}

func TestUpdateProgramNotFound(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPut, "/api/v1/programs/no-such-program",
		`{"name":"Fantasma"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateContentEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPut, "/api/v1/programs/noticiero/content/Octubre-semana-2-Lunes",
		`{"theme":"Edición especial","ideas":"- Reporte desde la plaza"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Edición especial", body["theme"])
	assert.Equal(t, "- Reporte desde la plaza", body["ideas"])
}

func TestUpdateContentMalformedKey(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPut, "/api/v1/programs/noticiero/content/sinformato",
		`{"theme":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateContentUnknownProgram(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPut, "/api/v1/programs/no-such/content/Octubre-semana-2-Lunes",
		`{"theme":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsEndpoints(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/v1/events/Octubre", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["efemerides"])
	assert.NotEmpty(t, body["conmemoraciones"])

	w = doJSON(router, http.MethodPut, "/api/v1/events/Octubre",
		`{"efemerides":[{"day":15,"event":"1959","description":"Acto local"}],"conmemoraciones":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/events/Octubre", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acto local")
}

func TestEventsAppendNotReplace(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/v1/events/Octubre", "")
	assert.Equal(t, http.StatusOK, w.Code)
	seeded, _ := decodeBody(t, w)["efemerides"].([]any)
	assert.NotEmpty(t, seeded)

	payload := `{"efemerides":[{"day":15,"event":"1959","description":"Acto local"}]}`

	w = doJSON(router, http.MethodPut, "/api/v1/events/Octubre", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["efemerides"])

	// The same entry a second time is skipped, not duplicated.
	w = doJSON(router, http.MethodPut, "/api/v1/events/Octubre", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["efemerides"])

	w = doJSON(router, http.MethodGet, "/api/v1/events/Octubre", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "Acto local"))

	// The seeded entries survive the additions.
	after, _ := decodeBody(t, w)["efemerides"].([]any)
	assert.Len(t, after, len(seeded)+1)
}

func TestEventsRejectBadMonthAndDay(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/api/v1/events/Brumario", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/v1/events/Octubre",
		`{"efemerides":[{"day":42,"event":"x","description":"y"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateIdeasUnavailable(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodPost, "/api/v1/ideas",
		`{"program_id":"noticiero","month":"Octubre","week_id":"semana-2","day":"Lunes"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	w := doJSON(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rcm_")
}

func TestParseContentKey(t *testing.T) {
	tests := []struct {
		key   string
		month string
		week  string
		day   string
		ok    bool
	}{
		{"Octubre-semana-2-Lunes", "Octubre", "semana-2", "Lunes", true},
		{"Enero-semana-10-Domingo", "Enero", "semana-10", "Domingo", true},
		{"sinformato", "", "", "", false},
		{"solo-dos", "", "", "", false},
		{"-semana-1-Lunes", "", "", "", false},
	}

	for _, tt := range tests {
		month, week, day, ok := parseContentKey(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.month, month, tt.key)
		assert.Equal(t, tt.week, week, tt.key)
		assert.Equal(t, tt.day, day, tt.key)
	}
}
