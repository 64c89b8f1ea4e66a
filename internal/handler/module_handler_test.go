package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

type moduleServiceMock struct {
	module      *models.EvaluationModule
	err         error
	lastRequest dto.CreateModuleRequest
	lastPrompt  string
}

func (m *moduleServiceMock) List() []models.EvaluationModule { return models.DefaultModules() }

func (m *moduleServiceMock) Create(ctx context.Context, req dto.CreateModuleRequest) (*models.EvaluationModule, error) {
	m.lastRequest = req
	return m.module, m.err
}

func (m *moduleServiceMock) Delete(ctx context.Context, id string) error { return m.err }

func (m *moduleServiceMock) Generate(ctx context.Context, prompt string) (*models.EvaluationModule, error) {
	m.lastPrompt = prompt
	return m.module, m.err
}

func TestModuleHandlerGenerateErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{err: appErrors.ErrAIUnavailable, status: http.StatusServiceUnavailable, code: "AI_UNAVAILABLE"},
		{err: appErrors.Clone(appErrors.ErrConflict, "busy"), status: http.StatusConflict, code: "CONFLICT"},
		{err: appErrors.Wrap(context.DeadlineExceeded, appErrors.ErrAIGeneration.Code, appErrors.ErrAIGeneration.Status, "timeout"), status: http.StatusBadGateway, code: "AI_GENERATION_FAILED"},
	}
	for _, tc := range cases {
		mock := &moduleServiceMock{err: tc.err}
		c, w := newGinContext(http.MethodPost, "/modules/generate", []byte(`{"prompt":"asistencia al laboratorio"}`))
		NewModuleHandler(mock, nil).Generate(c)
		assert.Equal(t, tc.status, w.Code)
		assert.Contains(t, w.Body.String(), tc.code)
		assert.Equal(t, "asistencia al laboratorio", mock.lastPrompt)
	}
}

func TestModuleHandlerGenerateRequiresPrompt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &moduleServiceMock{}
	c, w := newGinContext(http.MethodPost, "/modules/generate", []byte(`{}`))
	NewModuleHandler(mock, nil).Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mock.lastPrompt)
}

func TestModuleHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &moduleServiceMock{module: &models.EvaluationModule{ID: "mod-1", Name: "Tarea", Type: models.ModuleTypeSelect, Options: []string{"Sí"}}}
	c, w := newGinContext(http.MethodPost, "/modules", []byte(`{"name":"Tarea","type":"select","optionsText":"Sí"}`))
	NewModuleHandler(mock, nil).Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Sí", mock.lastRequest.OptionsText)

	c, w = newGinContext(http.MethodPost, "/modules", []byte(`{"name":"Tarea","type":"checkbox"}`))
	NewModuleHandler(mock, nil).Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModuleHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newGinContext(http.MethodDelete, "/modules/mod-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "mod-9"}}
	NewModuleHandler(&moduleServiceMock{}, nil).Delete(c)
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = newGinContext(http.MethodDelete, "/modules/mod-9", nil)
	NewModuleHandler(&moduleServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "module not found")}, nil).Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
