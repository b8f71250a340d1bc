package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// ProfileService serves member profile views
type ProfileService struct {
	studentRepo StudentRepository
	teacherRepo TeacherRepository
	classRepo   ClassRepository
}

// NewProfileService creates a new profile service
func NewProfileService(studentRepo StudentRepository, teacherRepo TeacherRepository, classRepo ClassRepository) *ProfileService {
	return &ProfileService{
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		classRepo:   classRepo,
	}
}

// StudentProfile is a student's own profile view
type StudentProfile struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	RollNo     *string `json:"roll_no,omitempty"`
	ClassName  string  `json:"class_name"`
	SchoolName string  `json:"school_name"`
	SchoolCode string  `json:"school_code"`
}

// TeacherProfile is a teacher's own profile view
type TeacherProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Subjects   []string `json:"subjects,omitempty"`
	Classes    []string `json:"classes,omitempty"`
	SchoolName string   `json:"school_name"`
	SchoolCode string   `json:"school_code"`
}

// Student builds the profile view for a student session
func (s *ProfileService) Student(ctx context.Context, identity model.SessionIdentity) (*StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, identity.MemberID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	profile := &StudentProfile{
		ID:         student.ID,
		Name:       student.Name,
		Username:   student.Username,
		RollNo:     student.RollNo,
		SchoolName: identity.SchoolName,
		SchoolCode: identity.SchoolCode,
	}
	if class, err := s.classRepo.GetByID(ctx, student.ClassID); err == nil {
		profile.ClassName = class.Name
	}
	return profile, nil
}

// UpdateProfileRequest carries the self-editable profile fields. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Name     *string
	Password *string
	Subjects []string
}

// UpdateStudent applies a profile edit for a student session and returns the
// refreshed view.
func (s *ProfileService) UpdateStudent(ctx context.Context, identity model.SessionIdentity, req UpdateProfileRequest) (*StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, identity.MemberID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		student.Name = name
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, ErrPasswordRequired
		}
		student.Password = *req.Password
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.Student(ctx, identity)
}

// UpdateTeacher applies a profile edit for a teacher session and returns the
// refreshed view.
func (s *ProfileService) UpdateTeacher(ctx context.Context, identity model.SessionIdentity, req UpdateProfileRequest) (*TeacherProfile, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, identity.MemberID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		teacher.Name = name
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, ErrPasswordRequired
		}
		teacher.Password = *req.Password
	}
	if req.Subjects != nil {
		subjects := make([]string, 0, len(req.Subjects))
		for _, subject := range req.Subjects {
			if trimmed := strings.TrimSpace(subject); trimmed != "" {
				subjects = append(subjects, trimmed)
			}
		}
		teacher.Subjects = subjects
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return s.Teacher(ctx, identity)
}

// Teacher builds the profile view for a teacher session
func (s *ProfileService) Teacher(ctx context.Context, identity model.SessionIdentity) (*TeacherProfile, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, identity.MemberID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	profile := &TeacherProfile{
		ID:         teacher.ID,
		Name:       teacher.Name,
		Email:      teacher.Email,
		Subjects:   teacher.Subjects,
		SchoolName: identity.SchoolName,
		SchoolCode: identity.SchoolCode,
	}
	for _, classID := range teacher.ClassIDs {
		if class, err := s.classRepo.GetByID(ctx, classID); err == nil {
			profile.Classes = append(profile.Classes, class.Name)
		}
	}
	return profile, nil
}
