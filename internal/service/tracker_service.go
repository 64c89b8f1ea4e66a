package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

// Mutation kinds reported to metrics.
const (
	mutationAttendance   = "attendance"
	mutationEvaluation   = "evaluation"
	mutationStudents     = "students"
	mutationSection      = "section"
	mutationModuleAdd    = "module_add"
	mutationModuleDelete = "module_delete"
)

type statePersister interface {
	Save(ctx context.Context, key string, value interface{})
}

// TrackerService owns the tracker records and the current session selection.
// Every mutation commits in memory and persists the affected keys before the lock is released.
type TrackerService struct {
	mu      sync.Mutex
	records models.Records
	session models.Session

	persist statePersister
	ids     IDGenerator
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewTrackerService constructs the controller from loaded records.
func NewTrackerService(records models.Records, persist statePersister, ids IDGenerator, metrics *MetricsService, logger *zap.Logger) *TrackerService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if persist == nil {
		persist = NewStatePersistence(nil, metrics, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if records.Attendance == nil {
		records.Attendance = models.AttendanceLog{}
	}
	if records.Evaluations == nil {
		records.Evaluations = models.EvaluationLog{}
	}
	svc := &TrackerService{
		records: records,
		persist: persist,
		ids:     ids,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	if len(records.Sections) > 0 {
		svc.session.ActiveSectionID = records.Sections[0].ID
	}
	svc.session.SelectedDate = Today(svc.now())
	return svc
}

// WithClock overrides the clock used for "today".
func (s *TrackerService) WithClock(now func() time.Time) *TrackerService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.session.SelectedDate = Today(now())
	return s
}

// Snapshot returns a deep copy of every record.
func (s *TrackerService) Snapshot() models.Records {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone()
}

// Session returns the current selection.
func (s *TrackerService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Sections lists sections and the active section id.
func (s *TrackerService) Sections() dto.SectionsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dto.SectionsResponse{
		Sections:        append([]models.Section{}, s.records.Sections...),
		ActiveSectionID: s.session.ActiveSectionID,
	}
}

// SectionStudents lists a section's students sorted by name.
func (s *TrackerService) SectionStudents(sectionID string) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := models.FindSection(s.records.Sections, sectionID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	return s.sectionStudentsLocked(sectionID), nil
}

// DayView assembles the attendance table of a section for a date.
// Empty arguments fall back to the session selection.
func (s *TrackerService) DayView(sectionID, date string) (*dto.DayView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		date = s.session.SelectedDate
	}
	if !models.ValidDate(date) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if sectionID == "" {
		sectionID = s.session.ActiveSectionID
	}
	section, ok := models.FindSection(s.records.Sections, sectionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}

	students := s.sectionStudentsLocked(sectionID)
	view := &dto.DayView{
		Date:     date,
		Section:  section,
		Modules:  s.records.Clone().Modules,
		Students: make([]dto.DayStudent, 0, len(students)),
	}
	for _, student := range students {
		row := dto.DayStudent{Student: student, Evaluations: map[string]string{}}
		if status, marked := s.records.Attendance.Status(date, student.ID); marked {
			row.Attendance = &status
		}
		if values, ok := s.records.Evaluations.Values(date, student.ID); ok {
			for moduleID, value := range values {
				row.Evaluations[moduleID] = value
			}
		}
		view.Students = append(view.Students, row)
	}
	return view, nil
}

// Modules lists the evaluation module definitions.
func (s *TrackerService) Modules() []models.EvaluationModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone().Modules
}

// ToggleAttendance flips one attendance cell and returns its resulting state.
func (s *TrackerService) ToggleAttendance(ctx context.Context, date, studentID string, status models.AttendanceStatus) (*dto.AttendanceCellResponse, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be present or absent")
	}
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := s.resolveDateLocked(date)
	if err != nil {
		return nil, err
	}
	s.records.Attendance = ToggleAttendance(s.records.Attendance, date, studentID, status)
	s.persist.Save(ctx, models.KeyAttendance, s.records.Attendance)
	s.metrics.RecordMutation(mutationAttendance)

	resp := &dto.AttendanceCellResponse{Date: date, StudentID: studentID}
	if current, marked := s.records.Attendance.Status(date, studentID); marked {
		resp.Status = &current
	}
	return resp, nil
}

// SetEvaluation stores one evaluation value.
func (s *TrackerService) SetEvaluation(ctx context.Context, date, studentID, moduleID, value string) (*dto.EvaluationCellResponse, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(moduleID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId and moduleId are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := s.resolveDateLocked(date)
	if err != nil {
		return nil, err
	}
	s.records.Evaluations = SetEvaluationValue(s.records.Evaluations, date, studentID, moduleID, value)
	s.persist.Save(ctx, models.KeyEvaluations, s.records.Evaluations)
	s.metrics.RecordMutation(mutationEvaluation)

	return &dto.EvaluationCellResponse{Date: date, StudentID: studentID, ModuleID: moduleID, Value: value}, nil
}

// AddStudents appends students to a section. An empty section id targets the active section.
func (s *TrackerService) AddStudents(ctx context.Context, sectionID string, names []string) ([]models.Student, error) {
	names = nonBlank(names)
	if len(names) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one student name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sectionID == "" {
		sectionID = s.session.ActiveSectionID
	}
	if _, ok := models.FindSection(s.records.Sections, sectionID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}

	roster, added := AddStudents(s.records.Students, names, sectionID, s.ids)
	s.records.Students = roster
	s.persist.Save(ctx, models.KeyStudents, s.records.Students)
	s.metrics.RecordMutation(mutationStudents)
	s.logger.Info("students added", zap.String("section_id", sectionID), zap.Int("count", len(added)))
	return added, nil
}

// CreateSection creates a section with its initial students and makes it active.
func (s *TrackerService) CreateSection(ctx context.Context, name string, names []string) (*dto.SectionCreatedResponse, error) {
	name = strings.TrimSpace(name)
	names = nonBlank(names)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "section name is required")
	}
	if len(names) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one student name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := CreateSection(s.records.Sections, s.records.Students, name, names, s.ids)
	s.records.Sections = batch.Sections
	s.records.Students = batch.Students
	s.session.ActiveSectionID = batch.Section.ID
	s.persist.Save(ctx, models.KeySections, s.records.Sections)
	s.persist.Save(ctx, models.KeyStudents, s.records.Students)
	s.metrics.RecordMutation(mutationSection)
	s.logger.Info("section created", zap.String("section_id", batch.Section.ID), zap.Int("students", len(batch.Added)))

	return &dto.SectionCreatedResponse{Section: batch.Section, Students: batch.Added}, nil
}

// AddModule assigns an id to module and appends it to the module list.
func (s *TrackerService) AddModule(ctx context.Context, module models.EvaluationModule) models.EvaluationModule {
	s.mu.Lock()
	defer s.mu.Unlock()

	module.ID = s.ids.NewID(prefixModule)
	module = module.Normalize()
	modules := make([]models.EvaluationModule, 0, len(s.records.Modules)+1)
	modules = append(modules, s.records.Modules...)
	s.records.Modules = append(modules, module)
	s.persist.Save(ctx, models.KeyModules, s.records.Modules)
	s.metrics.RecordMutation(mutationModuleAdd)
	return module
}

// DeleteModule removes a module definition. Recorded values for it stay in the evaluation log.
func (s *TrackerService) DeleteModule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := models.FindModule(s.records.Modules, id)
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "module not found")
	}
	modules := make([]models.EvaluationModule, 0, len(s.records.Modules)-1)
	modules = append(modules, s.records.Modules[:idx]...)
	s.records.Modules = append(modules, s.records.Modules[idx+1:]...)
	s.persist.Save(ctx, models.KeyModules, s.records.Modules)
	s.metrics.RecordMutation(mutationModuleDelete)
	return nil
}

// SelectSection makes an existing section active.
func (s *TrackerService) SelectSection(sectionID string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := models.FindSection(s.records.Sections, sectionID); !ok {
		return s.session, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	s.session.ActiveSectionID = sectionID
	return s.session, nil
}

// SelectDate sets the selected date.
func (s *TrackerService) SelectDate(date string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.ValidDate(date) {
		return s.session, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	s.session.SelectedDate = date
	return s.session, nil
}

// ShiftSelectedDate moves the selected date by days.
func (s *TrackerService) ShiftSelectedDate(days int) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := ShiftDate(s.session.SelectedDate, days)
	if err != nil {
		return s.session, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "selected date is invalid")
	}
	s.session.SelectedDate = next
	return s.session, nil
}

// ResetDateToToday selects the current UTC date.
func (s *TrackerService) ResetDateToToday() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.SelectedDate = Today(s.now())
	return s.session
}

func (s *TrackerService) resolveDateLocked(date string) (string, error) {
	if date == "" {
		return s.session.SelectedDate, nil
	}
	if !models.ValidDate(date) {
		return "", appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return date, nil
}

func (s *TrackerService) sectionStudentsLocked(sectionID string) []models.Student {
	students := make([]models.Student, 0)
	for _, student := range s.records.Students {
		if student.SectionID == sectionID {
			students = append(students, student)
		}
	}
	sortStudentsByName(students)
	return students
}

// sortStudentsByName orders students with Spanish collation, keeping roster order on ties.
func sortStudentsByName(students []models.Student) {
	collator := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(students, func(i, j int) bool {
		return collator.CompareString(students[i].Name, students[j].Name) < 0
	})
}
