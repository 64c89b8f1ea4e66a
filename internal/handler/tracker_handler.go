package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	"github.com/noah-isme/classroom-tracker/internal/service"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/response"
)

type trackerService interface {
	Sections() dto.SectionsResponse
	SectionStudents(sectionID string) ([]models.Student, error)
	CreateSection(ctx context.Context, name string, names []string) (*dto.SectionCreatedResponse, error)
	AddStudents(ctx context.Context, sectionID string, names []string) ([]models.Student, error)
	Session() models.Session
	SelectSection(sectionID string) (models.Session, error)
	SelectDate(date string) (models.Session, error)
	ShiftSelectedDate(days int) (models.Session, error)
	ResetDateToToday() models.Session
	DayView(sectionID, date string) (*dto.DayView, error)
	ToggleAttendance(ctx context.Context, date, studentID string, status models.AttendanceStatus) (*dto.AttendanceCellResponse, error)
	SetEvaluation(ctx context.Context, date, studentID, moduleID, value string) (*dto.EvaluationCellResponse, error)
}

// TrackerHandler exposes sections, session selection and the daily attendance table.
type TrackerHandler struct {
	tracker   trackerService
	validator *validator.Validate
}

// NewTrackerHandler constructs the handler.
func NewTrackerHandler(tracker trackerService, validate *validator.Validate) *TrackerHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &TrackerHandler{tracker: tracker, validator: validate}
}

// ListSections godoc
// @Summary List sections
// @Tags Sections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sections [get]
func (h *TrackerHandler) ListSections(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tracker.Sections())
}

// CreateSection godoc
// @Summary Create a section with its students
// @Tags Sections
// @Accept json
// @Produce json
// @Param payload body dto.CreateSectionRequest true "Section payload"
// @Success 201 {object} response.Envelope
// @Router /sections [post]
func (h *TrackerHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	names := req.StudentNames
	if len(names) == 0 {
		names = service.SplitNames(req.StudentNamesText)
	}
	created, err := h.tracker.CreateSection(c.Request.Context(), req.Name, names)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ListStudents godoc
// @Summary List students of a section
// @Tags Sections
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /sections/{id}/students [get]
func (h *TrackerHandler) ListStudents(c *gin.Context) {
	students, err := h.tracker.SectionStudents(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// AddStudents godoc
// @Summary Add students to a section
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param payload body dto.AddStudentsRequest true "Student names"
// @Success 201 {object} response.Envelope
// @Router /sections/{id}/students [post]
func (h *TrackerHandler) AddStudents(c *gin.Context) {
	var req dto.AddStudentsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	names := req.Names
	if len(names) == 0 {
		names = service.SplitNames(req.NamesText)
	}
	added, err := h.tracker.AddStudents(c.Request.Context(), c.Param("id"), names)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, added)
}

// GetSession godoc
// @Summary Current section and date selection
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *TrackerHandler) GetSession(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tracker.Session())
}

// SelectSection godoc
// @Summary Select the active section
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.SelectSectionRequest true "Section"
// @Success 200 {object} response.Envelope
// @Router /session/section [put]
func (h *TrackerHandler) SelectSection(c *gin.Context) {
	var req dto.SelectSectionRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	session, err := h.tracker.SelectSection(req.SectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// SelectDate godoc
// @Summary Select the working date
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.SelectDateRequest true "Date"
// @Success 200 {object} response.Envelope
// @Router /session/date [put]
func (h *TrackerHandler) SelectDate(c *gin.Context) {
	var req dto.SelectDateRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	session, err := h.tracker.SelectDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// ShiftSessionDate godoc
// @Summary Move the selected date by a number of days
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.ShiftDateRequest true "Offset"
// @Success 200 {object} response.Envelope
// @Router /session/date/shift [post]
func (h *TrackerHandler) ShiftSessionDate(c *gin.Context) {
	var req dto.ShiftDateRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	session, err := h.tracker.ShiftSelectedDate(req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// ResetSessionDate godoc
// @Summary Select today's date
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session/date/today [post]
func (h *TrackerHandler) ResetSessionDate(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tracker.ResetDateToToday())
}

// DayView godoc
// @Summary Attendance table of a section for a date
// @Tags Attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param sectionId query string false "Section ID, defaults to the active section"
// @Success 200 {object} response.Envelope
// @Router /days/{date} [get]
func (h *TrackerHandler) DayView(c *gin.Context) {
	view, err := h.tracker.DayView(c.Query("sectionId"), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ToggleAttendance godoc
// @Summary Toggle a student's attendance status
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.ToggleAttendanceRequest true "Attendance cell"
// @Success 200 {object} response.Envelope
// @Router /attendance [post]
func (h *TrackerHandler) ToggleAttendance(c *gin.Context) {
	var req dto.ToggleAttendanceRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	cell, err := h.tracker.ToggleAttendance(c.Request.Context(), req.Date, req.StudentID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cell)
}

// SetEvaluation godoc
// @Summary Record an evaluation value
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body dto.SetEvaluationRequest true "Evaluation cell"
// @Success 200 {object} response.Envelope
// @Router /evaluations [put]
func (h *TrackerHandler) SetEvaluation(c *gin.Context) {
	var req dto.SetEvaluationRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	cell, err := h.tracker.SetEvaluation(c.Request.Context(), req.Date, req.StudentID, req.ModuleID, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cell)
}

// ShiftDate godoc
// @Summary Shift a calendar date
// @Tags Dates
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param days query int true "Signed day offset"
// @Success 200 {object} response.Envelope
// @Router /dates/shift [get]
func (h *TrackerHandler) ShiftDate(c *gin.Context) {
	date := c.Query("date")
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "days must be an integer"))
		return
	}
	shifted, err := service.ShiftDate(date, days)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD"))
		return
	}
	response.JSON(c, http.StatusOK, dto.ShiftDateResponse{From: date, Days: days, Date: shifted})
}
