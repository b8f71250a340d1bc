package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidSchoolCode  = errors.New("school code not recognized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("unknown role")
)

// ===== Session Errors =====
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionRevoked  = errors.New("session revoked")
)

// ===== Access Errors =====
var (
	ErrAccessDenied = errors.New("not authorized for this resource")
)

// ===== Resource Errors =====
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSheetNotFound      = errors.New("attendance sheet not found")
)

// ===== Validation Errors =====
var (
	ErrInvalidDate      = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidStatus    = errors.New("attendance status must be present, absent, or late")
	ErrEmptySheet       = errors.New("attendance sheet has no entries")
	ErrUnknownStudent   = errors.New("entry references a student outside the class")
	ErrTitleRequired    = errors.New("title is required")
	ErrSubjectRequired  = errors.New("subject is required")
	ErrContentRequired  = errors.New("submission content is required")
	ErrNameRequired     = errors.New("name cannot be blank")
	ErrPasswordRequired = errors.New("password cannot be blank")
	ErrInvalidScore     = errors.New("score must be between 0 and the maximum")
	ErrEmptyGradeSheet  = errors.New("grade sheet has no rows")
)
