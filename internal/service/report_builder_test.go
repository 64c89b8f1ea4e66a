package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/export"
)

func reportRecords() models.Records {
	return models.Records{
		Students: []models.Student{
			{ID: "s1", Name: "Ann", SectionID: "sec1"},
			{ID: "s2", Name: "Ben", SectionID: "sec1"},
			{ID: "s3", Name: "Cid", SectionID: "gone"},
		},
		Sections:    []models.Section{{ID: "sec1", Name: "Grade 9"}},
		Attendance:  models.AttendanceLog{},
		Evaluations: models.EvaluationLog{},
		Modules:     models.DefaultModules(),
	}
}

func TestExportReportEmpty(t *testing.T) {
	dataset, err := ExportReport(reportRecords(), LabelsFor("es"))
	assert.True(t, errors.Is(err, appErrors.ErrNothingToExport))
	assert.Empty(t, dataset.Rows)
}

func TestExportReportOnlyOrphans(t *testing.T) {
	records := reportRecords()
	records.Attendance = models.AttendanceLog{"2024-03-01": {"ghost": models.AttendanceStatusPresent}}

	_, err := ExportReport(records, LabelsFor("es"))
	assert.ErrorIs(t, err, appErrors.ErrNothingToExport)
}

func TestExportReportSingleAttendanceRow(t *testing.T) {
	records := reportRecords()
	records.Attendance = models.AttendanceLog{"2024-03-01": {"s1": models.AttendanceStatusPresent}}

	dataset, err := ExportReport(records, LabelsFor("es"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fecha", "Estudiante", "Sección", "Asistencia", "Participación", "Comportamiento", "Notas"}, dataset.Headers)
	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, []string{"2024-03-01", "Ann", "Grade 9", "Presente", "", "", ""}, dataset.Rows[0])
}

func TestExportReportOrdering(t *testing.T) {
	records := reportRecords()
	records.Attendance = models.AttendanceLog{
		"2024-03-02": {"s1": models.AttendanceStatusAbsent, "s3": models.AttendanceStatusPresent},
		"2024-03-01": {"s2": models.AttendanceStatusPresent},
	}
	records.Evaluations = models.EvaluationLog{
		"2024-03-01": {"s1": {"mod3": "9"}},
	}

	dataset, err := ExportReport(records, LabelsFor("en"))
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 4)
	assert.Equal(t, []string{"2024-03-01", "Ann", "Grade 9", "N/A", "", "", "9"}, dataset.Rows[0])
	assert.Equal(t, []string{"2024-03-02", "Ann", "Grade 9", "Absent", "", "", ""}, dataset.Rows[1])
	assert.Equal(t, []string{"2024-03-01", "Ben", "Grade 9", "Present", "", "", ""}, dataset.Rows[2])
	assert.Equal(t, []string{"2024-03-02", "Cid", "N/A", "Present", "", "", ""}, dataset.Rows[3])
}

func TestExportReportQuotedValueRoundTrip(t *testing.T) {
	value := `He said, "hi"`
	records := reportRecords()
	records.Evaluations = models.EvaluationLog{"2024-03-01": {"s1": {"mod1": value}}}

	dataset, err := ExportReport(records, LabelsFor("es"))
	require.NoError(t, err)
	payload, err := export.NewCSVExporter().Render(dataset)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"He said, ""hi"""`)

	parsed, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, value, parsed[1][4])
}

func TestLabelsForUnknownLocale(t *testing.T) {
	assert.Equal(t, LabelsFor("es"), LabelsFor("fr"))
	assert.Equal(t, "Date", LabelsFor("en").Date)
}
