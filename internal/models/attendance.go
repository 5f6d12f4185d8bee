package models

// AttendanceStatus is the recorded state for one student on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one (student, date) attendance row as the upstream
// API returns it.
type AttendanceRecord struct {
	SchoolID   string           `json:"schoolId"`
	StudentID  string           `json:"studentId"`
	Date       string           `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Remarks    string           `json:"remarks"`
	RecordedBy string           `json:"recordedByModel"`
}

// DayStatus names how a calendar day resolved, in precedence order: an
// actual record beats the holiday list, which beats the weekly off set,
// which beats the past-uncovered default.
type DayStatus string

const (
	DayPresent   DayStatus = "Present"
	DayAbsent    DayStatus = "Absent"
	DayLeave     DayStatus = "Leave"
	DayHoliday   DayStatus = "Holiday"
	DayWeeklyOff DayStatus = "WeeklyOff"
	DayUnmarked  DayStatus = "Unmarked"
	DayUpcoming  DayStatus = "Upcoming"
)

// CalendarDay is one rendered calendar entry.
type CalendarDay struct {
	Date       string    `json:"date"`
	Status     DayStatus `json:"status"`
	Color      string    `json:"color"`
	Background string    `json:"background"`
	Remarks    string    `json:"remarks,omitempty"`
	RecordedBy string    `json:"recorded_by,omitempty"`
}

// CalendarView is weekly or monthly.
type CalendarView string

const (
	ViewWeekly  CalendarView = "weekly"
	ViewMonthly CalendarView = "monthly"
)

// RosterEntry is one student row on the marking screen. Status defaults to
// Absent until toggled.
type RosterEntry struct {
	StudentID   string           `json:"studentId"`
	StudentCode string           `json:"code"`
	Name        string           `json:"name"`
	SchoolID    string           `json:"school"`
	Status      AttendanceStatus `json:"status"`
	Remarks     string           `json:"remarks"`
}

// MarkRequest is the batch submission for one school+class+date.
type MarkRequest struct {
	Date    string        `json:"date" validate:"required"`
	Entries []RosterEntry `json:"entries" validate:"required,dive"`
}
