package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// SchoolRepository defines the interface for school lookup
type SchoolRepository interface {
	GetByCode(ctx context.Context, code string) (*model.School, error)
}

// StudentRepository defines the interface for student lookup
type StudentRepository interface {
	GetByUsername(ctx context.Context, schoolID, username string) (*model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
}

// TeacherRepository defines the interface for teacher lookup
type TeacherRepository interface {
	GetByEmail(ctx context.Context, schoolID, email string) (*model.Teacher, error)
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
}

// AuthService verifies member credentials and manages login sessions
type AuthService struct {
	schoolRepo  SchoolRepository
	studentRepo StudentRepository
	teacherRepo TeacherRepository
	sessions    SessionStore
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	SchoolRepo  SchoolRepository
	StudentRepo StudentRepository
	TeacherRepo TeacherRepository
	Sessions    SessionStore
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		schoolRepo:  cfg.SchoolRepo,
		studentRepo: cfg.StudentRepo,
		teacherRepo: cfg.TeacherRepo,
		sessions:    cfg.Sessions,
	}
}

// LoginRequest carries the credential triple entered on a login form.
// Identifier is a username for students and an email for teachers.
type LoginRequest struct {
	SchoolCode string
	Identifier string
	Password   string
}

// LoginResult represents a successful login
type LoginResult struct {
	Token    string
	Identity model.SessionIdentity
}

// Verify checks a credential triple against the member records of the school
// identified by the code. The checks are ordered so each failure mode gets a
// distinct error: blank input, unknown school, then bad identifier/password.
// Which of identifier or password was wrong is never revealed.
func (s *AuthService) Verify(ctx context.Context, role model.Role, req LoginRequest) (*model.SessionIdentity, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	code := strings.TrimSpace(req.SchoolCode)
	identifier := strings.TrimSpace(req.Identifier)
	if code == "" || identifier == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	school, err := s.schoolRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidSchoolCode
		}
		return nil, err
	}

	switch role {
	case model.RoleStudent:
		return s.verifyStudent(ctx, school, identifier, req.Password)
	case model.RoleTeacher:
		return s.verifyTeacher(ctx, school, identifier, req.Password)
	}
	return nil, ErrInvalidRole
}

func (s *AuthService) verifyStudent(ctx context.Context, school *model.School, username, password string) (*model.SessionIdentity, error) {
	// Username match is case-sensitive by contract.
	student, err := s.studentRepo.GetByUsername(ctx, school.ID, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !passwordsMatch(student.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &model.SessionIdentity{
		MemberID:   student.ID,
		Name:       student.Name,
		Role:       model.RoleStudent,
		SchoolID:   school.ID,
		SchoolCode: school.Code,
		SchoolName: school.Name,
		ClassID:    student.ClassID,
		Username:   student.Username,
	}, nil
}

func (s *AuthService) verifyTeacher(ctx context.Context, school *model.School, email, password string) (*model.SessionIdentity, error) {
	teacher, err := s.teacherRepo.GetByEmail(ctx, school.ID, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !passwordsMatch(teacher.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &model.SessionIdentity{
		MemberID:   teacher.ID,
		Name:       teacher.Name,
		Role:       model.RoleTeacher,
		SchoolID:   school.ID,
		SchoolCode: school.Code,
		SchoolName: school.Name,
		Email:      teacher.Email,
		Subjects:   teacher.Subjects,
	}, nil
}

// Login verifies credentials and opens a session on success
func (s *AuthService) Login(ctx context.Context, role model.Role, req LoginRequest) (*LoginResult, error) {
	identity, err := s.Verify(ctx, role, req)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Write(ctx, *identity)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Identity: *identity}, nil
}

// Logout clears the session behind a token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Clear(ctx, token)
}

// Me resolves a token to the identity it was issued for
func (s *AuthService) Me(ctx context.Context, token string) (*model.SessionIdentity, error) {
	return s.sessions.Read(ctx, token)
}

// passwordsMatch compares stored and supplied passwords in constant time.
// Member records hold passwords as entered at onboarding; comparison is
// plain equality against that stored value.
func passwordsMatch(stored, supplied string) bool {
	if len(stored) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
