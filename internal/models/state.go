package models

// Keys under which each part of the tracker state is stored.
const (
	KeyStudents    = "allStudents"
	KeySections    = "sections"
	KeyAttendance  = "attendance"
	KeyEvaluations = "evaluations"
	KeyModules     = "evaluationModules"
)

// StateKeys lists every persisted key.
var StateKeys = []string{KeyStudents, KeySections, KeyAttendance, KeyEvaluations, KeyModules}

// Records is the full set of domain records held by the tracker.
type Records struct {
	Students    []Student
	Sections    []Section
	Attendance  AttendanceLog
	Evaluations EvaluationLog
	Modules     []EvaluationModule
}

// Clone returns a deep copy safe to hand out of the tracker lock.
func (r Records) Clone() Records {
	modules := make([]EvaluationModule, len(r.Modules))
	for i, module := range r.Modules {
		if module.Options != nil {
			module.Options = append([]string{}, module.Options...)
		}
		modules[i] = module
	}
	return Records{
		Students:    append([]Student{}, r.Students...),
		Sections:    append([]Section{}, r.Sections...),
		Attendance:  r.Attendance.Clone(),
		Evaluations: r.Evaluations.Clone(),
		Modules:     modules,
	}
}

// Session is the current section and date selection.
type Session struct {
	ActiveSectionID string `json:"activeSectionId"`
	SelectedDate    string `json:"selectedDate"`
}
