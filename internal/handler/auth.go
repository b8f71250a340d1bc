package handler

import (
	"net/http"
	"strings"

	"github.com/jattu8602/school-portal-web-sub001/internal/middleware"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

// AuthHandler serves login, logout, and session introspection
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginRequest is the JSON body for both login routes
type loginRequest struct {
	SchoolCode string `json:"schoolCode"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password"`
}

// loginResponse carries the issued session token and its identity
type loginResponse struct {
	Token    string                `json:"token"`
	Identity model.SessionIdentity `json:"identity"`
}

// StudentLogin handles POST /v1/auth/student/login
func (h *AuthHandler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	result, err := h.authService.Login(r.Context(), model.RoleStudent, service.LoginRequest{
		SchoolCode: req.SchoolCode,
		Identifier: req.Username,
		Password:   req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, loginResponse{Token: result.Token, Identity: result.Identity}, map[string]string{
		"home": "/v1/student/home",
	})
}

// TeacherLogin handles POST /v1/auth/teacher/login
func (h *AuthHandler) TeacherLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid JSON body"))
		return
	}

	result, err := h.authService.Login(r.Context(), model.RoleTeacher, service.LoginRequest{
		SchoolCode: req.SchoolCode,
		Identifier: req.Email,
		Password:   req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, loginResponse{Token: result.Token, Identity: result.Identity}, map[string]string{
		"home": "/v1/teacher/profile",
	})
}

// Logout handles POST /v1/auth/logout. Logging out an already-cleared
// session succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := requestToken(r)
	if err := h.authService.Logout(r.Context(), token); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthorizedError("no active session"))
		return
	}
	WriteData(w, http.StatusOK, identity, nil)
}

// requestToken extracts the bearer token from the Authorization header
func requestToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
