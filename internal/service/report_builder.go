package service

import (
	"sort"

	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/export"
)

// ReportLabels holds the fixed column titles and status labels of the CSV report.
type ReportLabels struct {
	Date       string
	Student    string
	Section    string
	Attendance string
	Present    string
	Absent     string
	Missing    string
}

var reportLabels = map[string]ReportLabels{
	"es": {
		Date:       "Fecha",
		Student:    "Estudiante",
		Section:    "Sección",
		Attendance: "Asistencia",
		Present:    "Presente",
		Absent:     "Ausente",
		Missing:    "N/A",
	},
	"en": {
		Date:       "Date",
		Student:    "Student",
		Section:    "Section",
		Attendance: "Attendance",
		Present:    "Present",
		Absent:     "Absent",
		Missing:    "N/A",
	},
}

// LabelsFor returns the label set for a locale, defaulting to Spanish.
func LabelsFor(locale string) ReportLabels {
	if labels, ok := reportLabels[locale]; ok {
		return labels
	}
	return reportLabels["es"]
}

func (l ReportLabels) status(status models.AttendanceStatus, marked bool) string {
	if !marked {
		return l.Missing
	}
	switch status {
	case models.AttendanceStatusPresent:
		return l.Present
	case models.AttendanceStatusAbsent:
		return l.Absent
	default:
		return l.Missing
	}
}

// ExportReport flattens the dated logs into one row per (student, date) with any recorded data.
// Rows follow roster order, then ascending date. It returns ErrNothingToExport when no row qualifies.
func ExportReport(records models.Records, labels ReportLabels) (export.Dataset, error) {
	dates := reportDates(records.Attendance, records.Evaluations)
	if len(dates) == 0 {
		return export.Dataset{}, appErrors.ErrNothingToExport
	}

	headers := make([]string, 0, 4+len(records.Modules))
	headers = append(headers, labels.Date, labels.Student, labels.Section, labels.Attendance)
	for _, module := range records.Modules {
		headers = append(headers, module.Name)
	}

	sectionNames := make(map[string]string, len(records.Sections))
	for _, section := range records.Sections {
		sectionNames[section.ID] = section.Name
	}

	rows := make([][]string, 0)
	for _, student := range records.Students {
		for _, date := range dates {
			status, marked := records.Attendance.Status(date, student.ID)
			values, evaluated := records.Evaluations.Values(date, student.ID)
			if !marked && !evaluated {
				continue
			}

			sectionName, ok := sectionNames[student.SectionID]
			if !ok {
				sectionName = labels.Missing
			}

			row := make([]string, 0, len(headers))
			row = append(row, date, student.Name, sectionName, labels.status(status, marked))
			for _, module := range records.Modules {
				row = append(row, values[module.ID])
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return export.Dataset{}, appErrors.ErrNothingToExport
	}

	return export.Dataset{Headers: headers, Rows: rows}, nil
}

func reportDates(attendance models.AttendanceLog, evaluations models.EvaluationLog) []string {
	seen := make(map[string]struct{}, len(attendance)+len(evaluations))
	for date := range attendance {
		seen[date] = struct{}{}
	}
	for date := range evaluations {
		seen[date] = struct{}{}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
