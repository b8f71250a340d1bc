package handler

import (
	"errors"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionRevoked):
		return model.NewUnauthorizedError("no active session")
	case errors.Is(err, service.ErrInvalidSchoolCode):
		return schoolCodeError()

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrAccessDenied):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrClassNotFound):
		return model.NewNotFoundError("class")
	case errors.Is(err, service.ErrStudentNotFound):
		return model.NewNotFoundError("student")
	case errors.Is(err, service.ErrTeacherNotFound):
		return model.NewNotFoundError("teacher")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return model.NewNotFoundError("assignment")
	case errors.Is(err, service.ErrSheetNotFound):
		return model.NewNotFoundError("attendance sheet")

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrMissingFields):
		return model.NewValidationError([]model.FieldError{
			{Field: "schoolCode", Message: "required"},
			{Field: "identifier", Message: "required"},
			{Field: "password", Message: "required"},
		})
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptySheet),
		errors.Is(err, service.ErrUnknownStudent),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrSubjectRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrEmptyGradeSheet):
		return model.NewBadRequestError(err.Error())

	// ===== Infrastructure Errors → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewTransientError()
	}

	// Unknown errors map to 500 without leaking internals.
	return model.NewInternalError("An unexpected error occurred")
}

// schoolCodeError builds the 401 response for an unrecognized school code.
// The dedicated error code lets the login page distinguish a bad tenant code
// from bad member credentials.
func schoolCodeError() *model.ProblemDetails {
	p := model.NewUnauthorizedError("school code not recognized")
	p.Code = model.ErrCodeInvalidSchoolCode
	return p
}
