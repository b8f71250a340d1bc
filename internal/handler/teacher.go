package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/middleware"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

// TeacherHandler serves the teacher section loaders. Every route is behind
// RequireRole(teacher).
type TeacherHandler struct {
	attendanceService *service.AttendanceService
	assignmentService *service.AssignmentService
	gradeService      *service.GradeService
	scheduleService   *service.ScheduleService
	profileService    *service.ProfileService
	portalService     *service.PortalService
}

// TeacherHandlerConfig holds the services the teacher section depends on
type TeacherHandlerConfig struct {
	AttendanceService *service.AttendanceService
	AssignmentService *service.AssignmentService
	GradeService      *service.GradeService
	ScheduleService   *service.ScheduleService
	ProfileService    *service.ProfileService
	PortalService     *service.PortalService
}

// NewTeacherHandler creates a new teacher section handler
func NewTeacherHandler(cfg TeacherHandlerConfig) *TeacherHandler {
	return &TeacherHandler{
		attendanceService: cfg.AttendanceService,
		assignmentService: cfg.AssignmentService,
		gradeService:      cfg.GradeService,
		scheduleService:   cfg.ScheduleService,
		profileService:    cfg.ProfileService,
		portalService:     cfg.PortalService,
	}
}

// Roster handles GET /v1/teacher/classes/{classId}/students
func (h *TeacherHandler) Roster(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	roster, err := h.portalService.Roster(r.Context(), identity, r.PathValue("classId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, roster, len(roster))
}

// markAttendanceRequest is the JSON body for marking a class's attendance
type markAttendanceRequest struct {
	Date  string `json:"date"`
	Marks []struct {
		StudentID string `json:"student_id"`
		Status    string `json:"status"`
	} `json:"marks"`
}

// MarkAttendance handles POST /v1/teacher/classes/{classId}/attendance
func (h *TeacherHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req markAttendanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	marks := make([]service.MarkInput, 0, len(req.Marks))
	for _, m := range req.Marks {
		marks = append(marks, service.MarkInput{
			StudentID: m.StudentID,
			Status:    model.AttendanceStatus(m.Status),
		})
	}

	sheet, err := h.attendanceService.MarkSheet(r.Context(), identity, r.PathValue("classId"), req.Date, marks)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, sheet, nil)
}

// Attendance handles GET /v1/teacher/classes/{classId}/attendance.
// With ?date=YYYY-MM-DD it returns that day's sheet, otherwise the full
// history.
func (h *TeacherHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	classID := r.PathValue("classId")

	if date := r.URL.Query().Get("date"); date != "" {
		sheet, err := h.attendanceService.Sheet(r.Context(), identity, classID, date)
		if err != nil {
			WriteError(w, MapServiceError(err))
			return
		}
		WriteData(w, http.StatusOK, sheet, nil)
		return
	}

	sheets, err := h.attendanceService.History(r.Context(), identity, classID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, sheets, len(sheets))
}

// ExportAttendance handles GET /v1/teacher/classes/{classId}/attendance/export
func (h *TeacherHandler) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	data, err := h.attendanceService.ExportSheet(r.Context(), identity, r.PathValue("classId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// createAssignmentRequest is the JSON body for publishing an assignment
type createAssignmentRequest struct {
	Subject     string     `json:"subject"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// CreateAssignment handles POST /v1/teacher/classes/{classId}/assignments
func (h *TeacherHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req createAssignmentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), identity, service.CreateAssignmentRequest{
		ClassID:     r.PathValue("classId"),
		Subject:     req.Subject,
		Title:       req.Title,
		Description: req.Description,
		DueOn:       req.DueOn,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, assignment, nil)
}

// Assignments handles GET /v1/teacher/classes/{classId}/assignments
func (h *TeacherHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	assignments, err := h.assignmentService.ListForClass(r.Context(), identity, r.PathValue("classId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, assignments, len(assignments))
}

// Submissions handles GET /v1/teacher/assignments/{assignmentId}/submissions
func (h *TeacherHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	submissions, err := h.assignmentService.Submissions(r.Context(), identity, r.PathValue("assignmentId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, submissions, len(submissions))
}

// recordGradesRequest is the JSON body for a grade sheet
type recordGradesRequest struct {
	Subject  string  `json:"subject"`
	Title    string  `json:"title"`
	MaxScore float64 `json:"max_score"`
	Rows     []struct {
		StudentID string  `json:"student_id"`
		Score     float64 `json:"score"`
	} `json:"rows"`
}

// RecordGrades handles POST /v1/teacher/classes/{classId}/grades
func (h *TeacherHandler) RecordGrades(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req recordGradesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	rows := make([]service.GradeRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, service.GradeRow{StudentID: row.StudentID, Score: row.Score})
	}

	grades, err := h.gradeService.RecordSheet(r.Context(), identity, service.RecordSheetRequest{
		ClassID:  r.PathValue("classId"),
		Subject:  req.Subject,
		Title:    req.Title,
		MaxScore: req.MaxScore,
		Rows:     rows,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusCreated, grades, len(grades))
}

// Grades handles GET /v1/teacher/classes/{classId}/grades
func (h *TeacherHandler) Grades(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	grades, err := h.gradeService.ClassGrades(r.Context(), identity, r.PathValue("classId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, grades, len(grades))
}

// Schedule handles GET /v1/teacher/schedule
func (h *TeacherHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	entries, err := h.scheduleService.ForTeacher(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, entries, len(entries))
}

// ClassSchedule handles GET /v1/teacher/classes/{classId}/schedule
func (h *TeacherHandler) ClassSchedule(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	entries, err := h.scheduleService.ForClass(r.Context(), identity, r.PathValue("classId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, entries, len(entries))
}

// Profile handles GET /v1/teacher/profile
func (h *TeacherHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	profile, err := h.profileService.Teacher(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// UpdateProfile handles PATCH /v1/teacher/profile
func (h *TeacherHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req updateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	profile, err := h.profileService.UpdateTeacher(r.Context(), identity, service.UpdateProfileRequest{
		Name:     req.Name,
		Password: req.Password,
		Subjects: req.Subjects,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// Events handles GET /v1/teacher/events
func (h *TeacherHandler) Events(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	events, err := h.portalService.Events(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, events, len(events))
}

// createEventRequest is the JSON body for publishing an event
type createEventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// CreateEvent handles POST /v1/teacher/events
func (h *TeacherHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req createEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	event, err := h.portalService.CreateEvent(r.Context(), identity, service.CreateEventRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, event, nil)
}
