package dto

import "github.com/noah-isme/classroom-tracker/internal/models"

// CreateSectionRequest captures POST /sections payload.
// StudentNamesText accepts pasted text with one name per line.
type CreateSectionRequest struct {
	Name             string   `json:"name" validate:"required"`
	StudentNames     []string `json:"studentNames"`
	StudentNamesText string   `json:"studentNamesText"`
}

// AddStudentsRequest captures POST /sections/:id/students payload.
type AddStudentsRequest struct {
	Names     []string `json:"names"`
	NamesText string   `json:"namesText"`
}

// SectionsResponse lists sections with the active selection.
type SectionsResponse struct {
	Sections        []models.Section `json:"sections"`
	ActiveSectionID string           `json:"activeSectionId"`
}

// SectionCreatedResponse is returned after creating a section.
type SectionCreatedResponse struct {
	Section  models.Section   `json:"section"`
	Students []models.Student `json:"students"`
}

// SelectSectionRequest captures PUT /session/section payload.
type SelectSectionRequest struct {
	SectionID string `json:"sectionId" validate:"required"`
}

// SelectDateRequest captures PUT /session/date payload.
type SelectDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// ShiftDateRequest captures POST /session/date/shift payload.
type ShiftDateRequest struct {
	Days int `json:"days"`
}

// ShiftDateResponse is returned by the pure /dates/shift endpoint.
type ShiftDateResponse struct {
	From string `json:"from"`
	Days int    `json:"days"`
	Date string `json:"date"`
}

// ToggleAttendanceRequest captures POST /attendance payload. An empty date means the selected date.
type ToggleAttendanceRequest struct {
	Date      string                  `json:"date"`
	StudentID string                  `json:"studentId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
}

// AttendanceCellResponse reports a cell after a toggle. Status is nil when unmarked.
type AttendanceCellResponse struct {
	Date      string                   `json:"date"`
	StudentID string                   `json:"studentId"`
	Status    *models.AttendanceStatus `json:"status"`
}

// SetEvaluationRequest captures PUT /evaluations payload. An empty date means the selected date.
type SetEvaluationRequest struct {
	Date      string `json:"date"`
	StudentID string `json:"studentId" validate:"required"`
	ModuleID  string `json:"moduleId" validate:"required"`
	Value     string `json:"value"`
}

// EvaluationCellResponse echoes the stored evaluation cell.
type EvaluationCellResponse struct {
	Date      string `json:"date"`
	StudentID string `json:"studentId"`
	ModuleID  string `json:"moduleId"`
	Value     string `json:"value"`
}

// CreateModuleRequest captures POST /modules payload.
// OptionsText accepts a comma-separated list and is used when Options is empty.
type CreateModuleRequest struct {
	Name        string            `json:"name" validate:"required"`
	Type        models.ModuleType `json:"type" validate:"required,oneof=text select"`
	Options     []string          `json:"options"`
	OptionsText string            `json:"optionsText"`
}

// GenerateModuleRequest captures POST /modules/generate payload.
type GenerateModuleRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// DayStudent is one row of the attendance table for a date.
type DayStudent struct {
	models.Student
	Attendance  *models.AttendanceStatus `json:"attendance"`
	Evaluations map[string]string        `json:"evaluations"`
}

// DayView is the attendance table of one section on one date.
type DayView struct {
	Date     string                    `json:"date"`
	Section  models.Section            `json:"section"`
	Modules  []models.EvaluationModule `json:"modules"`
	Students []DayStudent              `json:"students"`
}

// ReportResponse describes a stored CSV report.
type ReportResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Rows      int    `json:"rows"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}
