package models

import "encoding/json"

// ModuleType enumerates evaluation module input kinds.
type ModuleType string

const (
	ModuleTypeText   ModuleType = "text"
	ModuleTypeSelect ModuleType = "select"
)

// Valid returns true when the type is a supported value.
func (t ModuleType) Valid() bool {
	return t == ModuleTypeText || t == ModuleTypeSelect
}

// EvaluationModule is a named evaluation field applied to every student.
// Options is only meaningful when Type is select.
type EvaluationModule struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    ModuleType `json:"type"`
	Options []string   `json:"options,omitempty"`
}

// Normalize enforces the options invariant: text modules carry none, select modules carry a non-nil list.
func (m EvaluationModule) Normalize() EvaluationModule {
	switch m.Type {
	case ModuleTypeText:
		m.Options = nil
	case ModuleTypeSelect:
		if m.Options == nil {
			m.Options = []string{}
		}
	}
	return m
}

// MarshalJSON omits options for text modules and always emits them for select modules.
func (m EvaluationModule) MarshalJSON() ([]byte, error) {
	type plain struct {
		ID      string     `json:"id"`
		Name    string     `json:"name"`
		Type    ModuleType `json:"type"`
		Options *[]string  `json:"options,omitempty"`
	}
	normalized := m.Normalize()
	out := plain{ID: normalized.ID, Name: normalized.Name, Type: normalized.Type}
	if normalized.Type == ModuleTypeSelect {
		out.Options = &normalized.Options
	}
	return json.Marshal(out)
}

// FindModule returns the index of the module with the given id, or -1.
func FindModule(modules []EvaluationModule, id string) int {
	for i, module := range modules {
		if module.ID == id {
			return i
		}
	}
	return -1
}

// EvaluationLog maps date -> student id -> module id -> value.
type EvaluationLog map[string]map[string]map[string]string

// Values returns the module values recorded for a student on a date and whether any entry exists.
func (l EvaluationLog) Values(date, studentID string) (map[string]string, bool) {
	values, ok := l[date][studentID]
	return values, ok
}

// Clone returns a deep copy.
func (l EvaluationLog) Clone() EvaluationLog {
	out := make(EvaluationLog, len(l))
	for date, day := range l {
		copiedDay := make(map[string]map[string]string, len(day))
		for studentID, values := range day {
			copiedValues := make(map[string]string, len(values))
			for moduleID, value := range values {
				copiedValues[moduleID] = value
			}
			copiedDay[studentID] = copiedValues
		}
		out[date] = copiedDay
	}
	return out
}
