package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

// ModuleGenerator produces the raw JSON description of one evaluation module from a prompt.
type ModuleGenerator interface {
	GenerateModuleJSON(ctx context.Context, prompt string) (string, error)
}

type moduleStore interface {
	Modules() []models.EvaluationModule
	AddModule(ctx context.Context, module models.EvaluationModule) models.EvaluationModule
	DeleteModule(ctx context.Context, id string) error
}

// moduleDraft is the accepted shape of generated output.
type moduleDraft struct {
	Name    string            `json:"name" validate:"required"`
	Type    models.ModuleType `json:"type" validate:"required,oneof=text select"`
	Options json.RawMessage   `json:"options"`
}

// ModuleService handles evaluation module definitions, including AI generation.
type ModuleService struct {
	store     moduleStore
	generator ModuleGenerator
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	timeout   time.Duration
	inflight  atomic.Bool
}

// NewModuleService constructs the module service. A nil generator disables generation.
func NewModuleService(store moduleStore, generator ModuleGenerator, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, timeout time.Duration) *ModuleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ModuleService{
		store:     store,
		generator: generator,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		timeout:   timeout,
	}
}

// GenerationEnabled reports whether a generator is configured.
func (s *ModuleService) GenerationEnabled() bool {
	return s.generator != nil
}

// List returns every module definition.
func (s *ModuleService) List() []models.EvaluationModule {
	return s.store.Modules()
}

// Create adds a manually defined module.
func (s *ModuleService) Create(ctx context.Context, req dto.CreateModuleRequest) (*models.EvaluationModule, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid module payload")
	}

	module := models.EvaluationModule{Name: req.Name, Type: req.Type}
	if req.Type == models.ModuleTypeSelect {
		options := req.Options
		if len(options) == 0 {
			options = SplitOptions(req.OptionsText)
		}
		module.Options = nonBlank(options)
	}

	created := s.store.AddModule(ctx, module)
	return &created, nil
}

// Delete removes a module definition.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteModule(ctx, id)
}

// Generate asks the generator for a module and appends it. Only one call may be in flight.
func (s *ModuleService) Generate(ctx context.Context, prompt string) (*models.EvaluationModule, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "prompt is required")
	}
	if s.generator == nil {
		s.metrics.RecordAIGeneration("unavailable")
		return nil, appErrors.ErrAIUnavailable
	}
	if !s.inflight.CompareAndSwap(false, true) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a module generation is already in progress")
	}
	defer s.inflight.Store(false)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateModuleJSON(callCtx, prompt)
	if err != nil {
		s.metrics.RecordAIGeneration(OutcomeFailure)
		s.logger.Warn("module generation failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrAIGeneration.Code, appErrors.ErrAIGeneration.Status, appErrors.ErrAIGeneration.Message)
	}

	module, err := ParseModuleDraft(raw, s.validator, s.logger)
	if err != nil {
		s.metrics.RecordAIGeneration(OutcomeFailure)
		s.logger.Warn("generated module rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrAIGeneration.Code, appErrors.ErrAIGeneration.Status, appErrors.ErrAIGeneration.Message)
	}

	created := s.store.AddModule(ctx, module)
	s.metrics.RecordAIGeneration(OutcomeSuccess)
	s.logger.Info("module generated", zap.String("module_id", created.ID), zap.String("type", string(created.Type)))
	return &created, nil
}

// ParseModuleDraft validates generated JSON and turns it into a module without id.
// A select module without a usable options list gets an empty one.
func ParseModuleDraft(raw string, validate *validator.Validate, logger *zap.Logger) (models.EvaluationModule, error) {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.EvaluationModule{}, appErrors.Clone(appErrors.ErrAIGeneration, "empty response")
	}

	var draft moduleDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return models.EvaluationModule{}, err
	}
	draft.Name = strings.TrimSpace(draft.Name)
	if err := validate.Struct(draft); err != nil {
		return models.EvaluationModule{}, err
	}

	module := models.EvaluationModule{Name: draft.Name, Type: draft.Type}
	if draft.Type == models.ModuleTypeSelect {
		var options []string
		if len(draft.Options) == 0 || json.Unmarshal(draft.Options, &options) != nil || options == nil {
			logger.Warn("generated select module has no options, using an empty list", zap.String("name", draft.Name))
			options = []string{}
		}
		module.Options = nonBlank(options)
	}
	return module, nil
}
