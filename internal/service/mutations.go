package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/classroom-tracker/internal/models"
)

// The functions in this file are pure: they never modify their inputs and
// return fresh values the caller commits and persists.

// ToggleAttendance clears the cell when it already holds status and sets it otherwise.
// A date left without entries is dropped. Two identical toggles restore the input
// exactly when log holds no empty day maps; StatePersistence.Load guarantees that.
// An empty day already stored at date is dropped as well.
func ToggleAttendance(log models.AttendanceLog, date, studentID string, status models.AttendanceStatus) models.AttendanceLog {
	next := log.Clone()
	day, ok := next[date]
	if !ok {
		day = make(map[string]models.AttendanceStatus)
		next[date] = day
	}
	if current, marked := day[studentID]; marked && current == status {
		delete(day, studentID)
	} else {
		day[studentID] = status
	}
	if len(day) == 0 {
		delete(next, date)
	}
	return next
}

// SetEvaluationValue overwrites one (date, student, module) cell, creating intermediate maps.
// An empty value is stored as-is and is distinct from an unset cell.
func SetEvaluationValue(log models.EvaluationLog, date, studentID, moduleID, value string) models.EvaluationLog {
	next := log.Clone()
	day, ok := next[date]
	if !ok {
		day = make(map[string]map[string]string)
		next[date] = day
	}
	values, ok := day[studentID]
	if !ok {
		values = make(map[string]string)
		day[studentID] = values
	}
	values[moduleID] = value
	return next
}

// AddStudents appends one student per non-blank trimmed name, in input order.
// It returns the new roster and the students that were added.
func AddStudents(roster []models.Student, names []string, sectionID string, ids IDGenerator) ([]models.Student, []models.Student) {
	added := make([]models.Student, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		added = append(added, models.Student{
			ID:        ids.NewID(prefixStudent),
			Name:      trimmed,
			SectionID: sectionID,
		})
	}
	next := make([]models.Student, 0, len(roster)+len(added))
	next = append(next, roster...)
	next = append(next, added...)
	return next, added
}

// SectionBatch is the result of CreateSection; both slices must be committed together.
type SectionBatch struct {
	Section  models.Section
	Sections []models.Section
	Students []models.Student
	Added    []models.Student
}

// CreateSection appends a new section and its students, all referencing the new section id.
func CreateSection(sections []models.Section, roster []models.Student, name string, studentNames []string, ids IDGenerator) SectionBatch {
	section := models.Section{ID: ids.NewID(prefixSection), Name: strings.TrimSpace(name)}
	nextSections := make([]models.Section, 0, len(sections)+1)
	nextSections = append(nextSections, sections...)
	nextSections = append(nextSections, section)

	nextRoster, added := AddStudents(roster, studentNames, section.ID, ids)
	return SectionBatch{
		Section:  section,
		Sections: nextSections,
		Students: nextRoster,
		Added:    added,
	}
}

// ShiftDate moves an ISO date by deltaDays using UTC calendar arithmetic.
func ShiftDate(currentDate string, deltaDays int) (string, error) {
	parsed, err := time.ParseInLocation(models.DateLayout, currentDate, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", currentDate, err)
	}
	return parsed.AddDate(0, 0, deltaDays).Format(models.DateLayout), nil
}

// Today returns the current UTC calendar date.
func Today(now time.Time) string {
	return now.UTC().Format(models.DateLayout)
}

// SplitNames splits pasted text into one trimmed name per non-blank line.
func SplitNames(raw string) []string {
	return nonBlank(strings.Split(raw, "\n"))
}

// SplitOptions splits a comma-separated option list, trimming and dropping blanks.
func SplitOptions(raw string) []string {
	return nonBlank(strings.Split(raw, ","))
}

// nonBlank trims every entry and drops the empty ones.
func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
