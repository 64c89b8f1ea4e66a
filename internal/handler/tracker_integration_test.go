package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-tracker/internal/models"
	"github.com/noah-isme/classroom-tracker/internal/repository"
	"github.com/noah-isme/classroom-tracker/internal/service"
	"github.com/noah-isme/classroom-tracker/pkg/storage"
)

type fixedGenerator struct {
	raw string
}

func (g fixedGenerator) GenerateModuleJSON(ctx context.Context, prompt string) (string, error) {
	return g.raw, nil
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct{ Code string } `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func clock() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func buildTrackerRouter(t *testing.T, stateDir string, gen service.ModuleGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewFileStateRepository(stateDir)
	require.NoError(t, err)
	metrics := service.NewMetricsService()
	persistence := service.NewStatePersistence(store, metrics, zap.NewNop())
	tracker := service.NewTrackerService(persistence.Load(context.Background()), persistence, nil, metrics, zap.NewNop()).WithClock(clock)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	reports := service.NewReportService(tracker, files, signer, nil, metrics, zap.NewNop(), service.ReportServiceConfig{Locale: "es"}).WithClock(clock)
	modules := service.NewModuleService(tracker, gen, nil, metrics, zap.NewNop(), time.Second)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), Handlers{
		Tracker: NewTrackerHandler(tracker, nil),
		Modules: NewModuleHandler(modules, nil),
		Reports: NewReportHandler(reports),
	})
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestTrackerRoutesIntegration(t *testing.T) {
	stateDir := t.TempDir()
	router := buildTrackerRouter(t, stateDir, fixedGenerator{raw: `{"name":"Tarea","type":"select"}`})

	t.Run("list sections", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/sections", "")
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Sections        []models.Section `json:"sections"`
			ActiveSectionID string           `json:"activeSectionId"`
		}
		decodeEnvelope(t, w, &body)
		assert.Len(t, body.Sections, 3)
		assert.Equal(t, "sec1", body.ActiveSectionID)
	})

	t.Run("empty export is a notice", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports/csv", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w, nil)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOTHING_TO_EXPORT", env.Error.Code)
	})

	var sectionID string
	t.Run("create section", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/sections", `{"name":"Grade 9","studentNamesText":"Ann\n\nBen\n"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var body struct {
			Section  models.Section   `json:"section"`
			Students []models.Student `json:"students"`
		}
		decodeEnvelope(t, w, &body)
		sectionID = body.Section.ID
		require.True(t, strings.HasPrefix(sectionID, "sec-"))
		require.Len(t, body.Students, 2)

		w = doJSON(router, http.MethodGet, "/api/v1/session", "")
		var session models.Session
		decodeEnvelope(t, w, &session)
		assert.Equal(t, sectionID, session.ActiveSectionID)
		assert.Equal(t, "2024-03-01", session.SelectedDate)
	})

	t.Run("create section requires name", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/sections", `{"studentNames":["Ann"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("toggle attendance", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/attendance", `{"studentId":"s1","status":"present"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var cell struct {
			Date   string  `json:"date"`
			Status *string `json:"status"`
		}
		decodeEnvelope(t, w, &cell)
		assert.Equal(t, "2024-03-01", cell.Date)
		require.NotNil(t, cell.Status)
		assert.Equal(t, "present", *cell.Status)

		w = doJSON(router, http.MethodPost, "/api/v1/attendance", `{"studentId":"s1","status":"late"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("set evaluation", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/api/v1/evaluations", `{"studentId":"s2","moduleId":"mod3","value":"He said, \"hi\""}`)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("day view", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/days/2024-03-01?sectionId=sec1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"attendance":"present"`)

		w = doJSON(router, http.MethodGet, "/api/v1/days/2024-03-01?sectionId=nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("export csv", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports/csv", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "reporte_asistencia_2024-03-01.csv")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Body.String(), "2024-03-01,Liam Smith,Grade 5 - Section A,Presente,,,")
		assert.Contains(t, w.Body.String(), `"He said, ""hi"""`)
	})

	t.Run("stored report download", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/reports", "")
		require.Equal(t, http.StatusCreated, w.Code)
		var report struct {
			URL  string `json:"url"`
			Rows int    `json:"rows"`
		}
		decodeEnvelope(t, w, &report)
		assert.Equal(t, 2, report.Rows)

		w = doJSON(router, http.MethodGet, report.URL, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Olivia Johnson")

		w = doJSON(router, http.MethodGet, "/api/v1/reports/download/bogus", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("generate module", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/modules/generate", `{"prompt":"tarea entregada"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"options":[]`)

		w = doJSON(router, http.MethodGet, "/api/v1/modules", "")
		env := decodeEnvelope(t, w, nil)
		assert.Equal(t, float64(4), env.Meta["total"])
	})

	t.Run("shift date", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/dates/shift?date=2024-02-28&days=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"date":"2024-02-29"`)

		w = doJSON(router, http.MethodGet, "/api/v1/dates/shift?date=2024-02-28&days=x", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("session date", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/session/date/shift", `{"days":-1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"selectedDate":"2024-02-29"`)

		w = doJSON(router, http.MethodPost, "/api/v1/session/date/today", "")
		assert.Contains(t, w.Body.String(), `"selectedDate":"2024-03-01"`)
	})

	t.Run("state survives restart", func(t *testing.T) {
		restarted := buildTrackerRouter(t, stateDir, nil)
		w := doJSON(restarted, http.MethodGet, "/api/v1/sections", "")
		var body struct {
			Sections []models.Section `json:"sections"`
		}
		decodeEnvelope(t, w, &body)
		assert.Len(t, body.Sections, 4)

		w = doJSON(restarted, http.MethodPost, "/api/v1/modules/generate", `{"prompt":"x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
