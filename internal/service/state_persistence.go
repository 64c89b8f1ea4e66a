package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/middleware/requestid"
)

// StateStore abstracts a key/value backend holding one JSON document per key.
type StateStore interface {
	Driver() string
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// saveTimeout bounds one write. Writes run detached from the caller's cancellation.
const saveTimeout = 5 * time.Second

// StatePersistence applies the tracker's best-effort policy on top of a StateStore:
// reads fall back to defaults and writes never fail the caller.
type StatePersistence struct {
	store   StateStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStatePersistence constructs the persistence adapter.
func NewStatePersistence(store StateStore, metrics *MetricsService, logger *zap.Logger) *StatePersistence {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatePersistence{store: store, metrics: metrics, logger: logger}
}

// Load reads every state key, substituting the built-in default for missing or unreadable ones.
func (p *StatePersistence) Load(ctx context.Context) models.Records {
	records := models.Records{
		Students:    models.DefaultStudents(),
		Sections:    models.DefaultSections(),
		Attendance:  models.AttendanceLog{},
		Evaluations: models.EvaluationLog{},
		Modules:     models.DefaultModules(),
	}

	var students []models.Student
	if p.load(ctx, models.KeyStudents, &students) && students != nil {
		records.Students = students
	}
	var sections []models.Section
	if p.load(ctx, models.KeySections, &sections) && sections != nil {
		records.Sections = sections
	}
	var attendance models.AttendanceLog
	if p.load(ctx, models.KeyAttendance, &attendance) && attendance != nil {
		records.Attendance = dropEmptyDays(attendance)
	}
	var evaluations models.EvaluationLog
	if p.load(ctx, models.KeyEvaluations, &evaluations) && evaluations != nil {
		records.Evaluations = evaluations
	}
	var modules []models.EvaluationModule
	if p.load(ctx, models.KeyModules, &modules) && modules != nil {
		for i := range modules {
			modules[i] = modules[i].Normalize()
		}
		records.Modules = modules
	}

	return records
}

// Save writes one key. The mutation is already committed in memory, so a
// cancelled request must not drop the write. Failures are logged and
// swallowed; there is no retry.
func (p *StatePersistence) Save(ctx context.Context, key string, value interface{}) {
	if p == nil || p.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	start := time.Now()
	err := p.store.Set(ctx, key, value)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		p.logger.Error("state write failed",
			zap.String("key", key),
			zap.String("driver", p.store.Driver()),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
	}
	p.metrics.ObserveStoreOperation(p.store.Driver(), "set", outcome, time.Since(start))
}

// load decodes key into dest and reports whether a stored value was usable.
func (p *StatePersistence) load(ctx context.Context, key string, dest interface{}) bool {
	if p.store == nil {
		return false
	}
	start := time.Now()
	err := p.store.Get(ctx, key, dest)
	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, appErrors.ErrKeyNotFound):
		outcome = OutcomeMissing
		p.logger.Debug("state key missing, using default", zap.String("key", key))
	default:
		outcome = OutcomeFailure
		p.logger.Warn("state read failed, using default", zap.String("key", key), zap.String("driver", p.store.Driver()), zap.Error(err))
	}
	p.metrics.ObserveStoreOperation(p.store.Driver(), "get", outcome, time.Since(start))
	return err == nil
}

func dropEmptyDays(log models.AttendanceLog) models.AttendanceLog {
	for date, day := range log {
		if len(day) == 0 {
			delete(log, date)
		}
	}
	return log
}
