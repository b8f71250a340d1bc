package handler

import (
	"net/http"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/middleware"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

// StudentHandler serves the student section loaders. Every route is behind
// RequireRole(student), so the identity is always present and always a
// student.
type StudentHandler struct {
	attendanceService *service.AttendanceService
	assignmentService *service.AssignmentService
	gradeService      *service.GradeService
	scheduleService   *service.ScheduleService
	profileService    *service.ProfileService
	portalService     *service.PortalService
}

// StudentHandlerConfig holds the services the student section depends on
type StudentHandlerConfig struct {
	AttendanceService *service.AttendanceService
	AssignmentService *service.AssignmentService
	GradeService      *service.GradeService
	ScheduleService   *service.ScheduleService
	ProfileService    *service.ProfileService
	PortalService     *service.PortalService
}

// NewStudentHandler creates a new student section handler
func NewStudentHandler(cfg StudentHandlerConfig) *StudentHandler {
	return &StudentHandler{
		attendanceService: cfg.AttendanceService,
		assignmentService: cfg.AssignmentService,
		gradeService:      cfg.GradeService,
		scheduleService:   cfg.ScheduleService,
		profileService:    cfg.ProfileService,
		portalService:     cfg.PortalService,
	}
}

// homeResponse is the student dashboard payload
type homeResponse struct {
	Name              string                   `json:"name"`
	SchoolName        string                   `json:"school_name"`
	AttendanceSummary *model.AttendanceSummary `json:"attendance_summary"`
	PendingCount      int                      `json:"pending_assignments"`
	UpcomingEvents    []*model.Event           `json:"upcoming_events"`
	TodaySchedule     []*model.ScheduleEntry   `json:"today_schedule"`
}

// Home handles GET /v1/student/home
func (h *StudentHandler) Home(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	ctx := r.Context()

	_, summary, err := h.attendanceService.StudentHistory(ctx, identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	assignments, err := h.assignmentService.ListForStudent(ctx, identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	pending := 0
	for _, a := range assignments {
		if !a.Submitted {
			pending++
		}
	}

	events, err := h.portalService.Events(ctx, identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	upcoming := make([]*model.Event, 0, len(events))
	now := time.Now()
	for _, e := range events {
		if e.Date.After(now) {
			upcoming = append(upcoming, e)
		}
	}

	schedule, err := h.scheduleService.ForStudent(ctx, identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	today := weekday(now)
	todaySlots := make([]*model.ScheduleEntry, 0)
	for _, entry := range schedule {
		if entry.Day == today {
			todaySlots = append(todaySlots, entry)
		}
	}

	WriteData(w, http.StatusOK, homeResponse{
		Name:              identity.Name,
		SchoolName:        identity.SchoolName,
		AttendanceSummary: summary,
		PendingCount:      pending,
		UpcomingEvents:    upcoming,
		TodaySchedule:     todaySlots,
	}, nil)
}

// Assignments handles GET /v1/student/assignments
func (h *StudentHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	views, err := h.assignmentService.ListForStudent(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, views, len(views))
}

// submitRequest is the JSON body for an assignment submission
type submitRequest struct {
	Content string `json:"content"`
}

// SubmitAssignment handles POST /v1/student/assignments/{assignmentId}/submit
func (h *StudentHandler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req submitRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	submission, err := h.assignmentService.Submit(r.Context(), identity, r.PathValue("assignmentId"), req.Content)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, submission, nil)
}

// attendanceResponse pairs a student's history with its summary
type attendanceResponse struct {
	Records []service.StudentRecord  `json:"records"`
	Summary *model.AttendanceSummary `json:"summary"`
}

// Attendance handles GET /v1/student/attendance
func (h *StudentHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	records, summary, err := h.attendanceService.StudentHistory(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, attendanceResponse{Records: records, Summary: summary}, nil)
}

// gradesResponse pairs a student's grades with per-subject summaries
type gradesResponse struct {
	Grades    []*model.Grade        `json:"grades"`
	Summaries []*model.GradeSummary `json:"summaries"`
}

// Grades handles GET /v1/student/grades
func (h *StudentHandler) Grades(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	grades, summaries, err := h.gradeService.StudentGrades(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, gradesResponse{Grades: grades, Summaries: summaries}, nil)
}

// Schedule handles GET /v1/student/schedule
func (h *StudentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	entries, err := h.scheduleService.ForStudent(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, entries, len(entries))
}

// Profile handles GET /v1/student/profile
func (h *StudentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	profile, err := h.profileService.Student(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// updateProfileRequest is the JSON body for a profile edit
type updateProfileRequest struct {
	Name     *string  `json:"name,omitempty"`
	Password *string  `json:"password,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
}

// UpdateProfile handles PATCH /v1/student/profile
func (h *StudentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req updateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	profile, err := h.profileService.UpdateStudent(r.Context(), identity, service.UpdateProfileRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, profile, nil)
}

// Events handles GET /v1/student/events
func (h *StudentHandler) Events(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	events, err := h.portalService.Events(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteCollection(w, http.StatusOK, events, len(events))
}

// weekday lowercases a weekday name to match schedule entries
func weekday(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
