package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationModuleJSON(t *testing.T) {
	text, err := json.Marshal(EvaluationModule{ID: "m1", Name: "Notas", Type: ModuleTypeText, Options: []string{"stray"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","name":"Notas","type":"text"}`, string(text))

	sel, err := json.Marshal(EvaluationModule{ID: "m2", Name: "Tarea", Type: ModuleTypeSelect})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m2","name":"Tarea","type":"select","options":[]}`, string(sel))

	var decoded EvaluationModule
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m3","name":"X","type":"select","options":["a","b"]}`), &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.Options)
}

func TestAttendanceStatusValid(t *testing.T) {
	assert.True(t, AttendanceStatusPresent.Valid())
	assert.True(t, AttendanceStatusAbsent.Valid())
	assert.False(t, AttendanceStatus("late").Valid())
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-2-1"))
	assert.False(t, ValidDate(""))
}

func TestRecordsCloneIsDeep(t *testing.T) {
	records := Records{
		Students:    DefaultStudents(),
		Sections:    DefaultSections(),
		Attendance:  AttendanceLog{"2024-03-01": {"s1": AttendanceStatusPresent}},
		Evaluations: EvaluationLog{"2024-03-01": {"s1": {"mod3": "ok"}}},
		Modules:     DefaultModules(),
	}
	clone := records.Clone()
	clone.Attendance["2024-03-01"]["s1"] = AttendanceStatusAbsent
	clone.Evaluations["2024-03-01"]["s1"]["mod3"] = "changed"
	clone.Modules[0].Options[0] = "changed"
	clone.Students[0].Name = "changed"

	assert.Equal(t, AttendanceStatusPresent, records.Attendance["2024-03-01"]["s1"])
	assert.Equal(t, "ok", records.Evaluations["2024-03-01"]["s1"]["mod3"])
	assert.Equal(t, "Excelente", records.Modules[0].Options[0])
	assert.Equal(t, "Liam Smith", records.Students[0].Name)
}

func TestDefaultStudentsReferenceDefaultSections(t *testing.T) {
	sections := DefaultSections()
	for _, student := range DefaultStudents() {
		_, ok := FindSection(sections, student.SectionID)
		assert.True(t, ok, student.ID)
	}
	assert.Len(t, DefaultStudents(), 28)
}
