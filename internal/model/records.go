package model

import "time"

// AttendanceStatus is the per-student mark on an attendance sheet.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AttendanceEntry is one student's mark within a sheet.
type AttendanceEntry struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name,omitempty"`
	Status      AttendanceStatus `json:"status"`
}

// AttendanceSheet is the single document holding a class's attendance for
// one calendar date. Marking the same class/date again replaces the sheet.
type AttendanceSheet struct {
	ID        string            `json:"id"`
	SchoolID  string            `json:"school_id"`
	ClassID   string            `json:"class_id"`
	Date      string            `json:"date"` // YYYY-MM-DD
	TeacherID string            `json:"teacher_id"`
	Entries   []AttendanceEntry `json:"entries"`
	CreatedOn time.Time         `json:"created_on"`
	UpdatedOn time.Time         `json:"updated_on"`
}

// AttendanceSummary aggregates one student's marks across sheets.
type AttendanceSummary struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Rate    float64 `json:"rate"`
}

// Grade is a single score a teacher recorded for a student.
type Grade struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	ClassID   string    `json:"class_id"`
	StudentID string    `json:"student_id"`
	TeacherID string    `json:"teacher_id"`
	Subject   string    `json:"subject"`
	Title     string    `json:"title"` // exam or assessment name
	Score     float64   `json:"score"`
	MaxScore  float64   `json:"max_score"`
	CreatedOn time.Time `json:"created_on"`
}

// GradeSummary aggregates a student's scores for one subject.
type GradeSummary struct {
	Subject string  `json:"subject"`
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Assignment is work a teacher set for a class.
type Assignment struct {
	ID          string     `json:"id"`
	SchoolID    string     `json:"school_id"`
	ClassID     string     `json:"class_id"`
	TeacherID   string     `json:"teacher_id"`
	Subject     string     `json:"subject"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
}

// SubmissionStatus reflects where a student's submission stands.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionLate      SubmissionStatus = "late"
)

// Submission is a student's answer to an assignment. One per student per
// assignment; resubmitting replaces the content.
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignment_id"`
	StudentID    string           `json:"student_id"`
	StudentName  string           `json:"student_name,omitempty"`
	Content      string           `json:"content"`
	Status       SubmissionStatus `json:"status"`
	SubmittedOn  time.Time        `json:"submitted_on"`
}

// AssignmentView is an assignment joined with the viewing student's
// submission state.
type AssignmentView struct {
	Assignment
	Submitted   bool       `json:"submitted"`
	SubmittedOn *time.Time `json:"submitted_on,omitempty"`
}

// ScheduleEntry is one slot on a class timetable.
type ScheduleEntry struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	ClassID   string    `json:"class_id"`
	TeacherID string    `json:"teacher_id,omitempty"`
	Day       string    `json:"day"` // monday..sunday
	Period    int       `json:"period"`
	Subject   string    `json:"subject"`
	StartTime string    `json:"start_time"` // HH:MM
	EndTime   string    `json:"end_time"`
	CreatedOn time.Time `json:"created_on"`
}
