package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	"github.com/noah-isme/classroom-tracker/pkg/response"
)

type moduleService interface {
	List() []models.EvaluationModule
	Create(ctx context.Context, req dto.CreateModuleRequest) (*models.EvaluationModule, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, prompt string) (*models.EvaluationModule, error)
}

// ModuleHandler exposes evaluation module endpoints.
type ModuleHandler struct {
	modules   moduleService
	validator *validator.Validate
}

// NewModuleHandler constructs the handler.
func NewModuleHandler(modules moduleService, validate *validator.Validate) *ModuleHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ModuleHandler{modules: modules, validator: validate}
}

// List godoc
// @Summary List evaluation modules
// @Tags Modules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /modules [get]
func (h *ModuleHandler) List(c *gin.Context) {
	modules := h.modules.List()
	response.JSON(c, http.StatusOK, modules, map[string]interface{}{"total": len(modules)})
}

// Create godoc
// @Summary Create an evaluation module
// @Tags Modules
// @Accept json
// @Produce json
// @Param payload body dto.CreateModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Router /modules [post]
func (h *ModuleHandler) Create(c *gin.Context) {
	var req dto.CreateModuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	module, err := h.modules.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}

// Delete godoc
// @Summary Delete an evaluation module
// @Tags Modules
// @Param id path string true "Module ID"
// @Success 204
// @Router /modules/{id} [delete]
func (h *ModuleHandler) Delete(c *gin.Context) {
	if err := h.modules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Generate godoc
// @Summary Generate an evaluation module from a description
// @Tags Modules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateModuleRequest true "Prompt"
// @Success 201 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /modules/generate [post]
func (h *ModuleHandler) Generate(c *gin.Context) {
	var req dto.GenerateModuleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	module, err := h.modules.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}
