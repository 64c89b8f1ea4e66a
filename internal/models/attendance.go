package models

import "time"

// DateLayout is the ISO calendar date format used as log keys.
const DateLayout = "2006-01-02"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceLog maps date -> student id -> status. A missing entry means unmarked.
type AttendanceLog map[string]map[string]AttendanceStatus

// Status returns the recorded status and whether the cell is marked.
func (l AttendanceLog) Status(date, studentID string) (AttendanceStatus, bool) {
	status, ok := l[date][studentID]
	return status, ok
}

// Clone returns a deep copy.
func (l AttendanceLog) Clone() AttendanceLog {
	out := make(AttendanceLog, len(l))
	for date, day := range l {
		copied := make(map[string]AttendanceStatus, len(day))
		for id, status := range day {
			copied[id] = status
		}
		out[date] = copied
	}
	return out
}

// ValidDate reports whether raw is an ISO YYYY-MM-DD calendar date.
func ValidDate(raw string) bool {
	parsed, err := time.Parse(DateLayout, raw)
	return err == nil && parsed.Format(DateLayout) == raw
}
