package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/service"
)

type stubSessionStore struct {
	identities map[string]model.SessionIdentity
}

func (s *stubSessionStore) Write(ctx context.Context, identity model.SessionIdentity) (string, error) {
	return "", nil
}

func (s *stubSessionStore) Read(ctx context.Context, token string) (*model.SessionIdentity, error) {
	if identity, ok := s.identities[token]; ok {
		return &identity, nil
	}
	return nil, service.ErrSessionNotFound
}

func (s *stubSessionStore) Clear(ctx context.Context, token string) error {
	return nil
}

func newStubStore() *stubSessionStore {
	return &stubSessionStore{
		identities: map[string]model.SessionIdentity{
			"student-token": {
				MemberID: "student:ravi",
				Role:     model.RoleStudent,
				SchoolID: "school:dps",
				ClassID:  "class:10a",
			},
			"teacher-token": {
				MemberID: "teacher:meera",
				Role:     model.RoleTeacher,
				SchoolID: "school:dps",
			},
		},
	}
}

func TestSessionAuth_AttachesIdentity(t *testing.T) {
	t.Parallel()

	var got model.SessionIdentity
	var found bool
	handler := SessionAuth(newStubStore())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetIdentity(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/student/home", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("identity not attached")
	}
	if got.MemberID != "student:ravi" {
		t.Errorf("member = %q, want student:ravi", got.MemberID)
	}
}

func TestSessionAuth_UnknownTokenPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := SessionAuth(newStubStore())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := GetIdentity(r.Context()); ok {
			t.Error("unexpected identity for unknown token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/student/home", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("next handler was not invoked")
	}
}

func TestRequireRole_NoSession(t *testing.T) {
	t.Parallel()

	called := false
	guarded := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
		SessionAuth(newStubStore()),
		RequireRole(model.RoleStudent, "/student/login"),
	)

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/student/home", nil))

	if called {
		t.Error("handler ran without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var problem model.ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("invalid problem body: %v", err)
	}
	if problem.Login != "/student/login" {
		t.Errorf("login route = %q, want /student/login", problem.Login)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	t.Parallel()

	called := false
	guarded := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
		SessionAuth(newStubStore()),
		RequireRole(model.RoleTeacher, "/teacher/login"),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/teacher/classes/class:10a/students", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if called {
		t.Error("handler ran for wrong role")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	var problem model.ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("invalid problem body: %v", err)
	}
	if problem.Login != "/teacher/login" {
		t.Errorf("login route = %q, want /teacher/login", problem.Login)
	}
}

func TestRequireRole_MatchingRole(t *testing.T) {
	t.Parallel()

	called := false
	guarded := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
		SessionAuth(newStubStore()),
		RequireRole(model.RoleStudent, "/student/login"),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/student/home", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if !called {
		t.Error("handler did not run for matching role")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"normal", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
