package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// ============================================================================
// Helpers
// ============================================================================

func profileStudentRepo(stored *model.Student) *mockStudentRepo {
	return &mockStudentRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Student, error) {
			return stored, nil
		},
		updateFunc: func(ctx context.Context, student *model.Student) error {
			*stored = *student
			return nil
		},
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestStudentProfile(t *testing.T) {
	t.Parallel()

	rollNo := "14"
	svc := NewProfileService(
		profileStudentRepo(&model.Student{
			ID:       "student:ravi",
			SchoolID: "school:dps",
			ClassID:  "class:10a",
			Username: "ravi",
			Name:     "Ravi Kumar",
			RollNo:   &rollNo,
		}),
		&mockTeacherRepo{},
		testClassRepo(),
	)

	identity := studentIdentity()
	identity.SchoolName = "Delhi Public School"
	identity.SchoolCode = "DPS01"

	profile, err := svc.Student(context.Background(), identity)
	if err != nil {
		t.Fatalf("Student() error = %v", err)
	}
	if profile.Name != "Ravi Kumar" {
		t.Errorf("Name = %q, want %q", profile.Name, "Ravi Kumar")
	}
	if profile.ClassName != "10A" {
		t.Errorf("ClassName = %q, want %q", profile.ClassName, "10A")
	}
	if profile.SchoolCode != "DPS01" {
		t.Errorf("SchoolCode = %q, want %q", profile.SchoolCode, "DPS01")
	}
}

func TestUpdateStudentProfile(t *testing.T) {
	t.Parallel()

	t.Run("updates name and password", func(t *testing.T) {
		t.Parallel()
		stored := &model.Student{
			ID:       "student:ravi",
			ClassID:  "class:10a",
			Username: "ravi",
			Password: "pass123",
			Name:     "Ravi Kumar",
		}
		svc := NewProfileService(profileStudentRepo(stored), &mockTeacherRepo{}, testClassRepo())

		name := "  Ravi K.  "
		password := "newpass"
		profile, err := svc.UpdateStudent(context.Background(), studentIdentity(), UpdateProfileRequest{
			Name:     &name,
			Password: &password,
		})
		if err != nil {
			t.Fatalf("UpdateStudent() error = %v", err)
		}
		if profile.Name != "Ravi K." {
			t.Errorf("Name = %q, want %q", profile.Name, "Ravi K.")
		}
		if stored.Password != "newpass" {
			t.Errorf("stored password = %q, want %q", stored.Password, "newpass")
		}
	})

	t.Run("nil fields leave the record alone", func(t *testing.T) {
		t.Parallel()
		stored := &model.Student{
			ID:       "student:ravi",
			ClassID:  "class:10a",
			Username: "ravi",
			Password: "pass123",
			Name:     "Ravi Kumar",
		}
		svc := NewProfileService(profileStudentRepo(stored), &mockTeacherRepo{}, testClassRepo())

		_, err := svc.UpdateStudent(context.Background(), studentIdentity(), UpdateProfileRequest{})
		if err != nil {
			t.Fatalf("UpdateStudent() error = %v", err)
		}
		if stored.Name != "Ravi Kumar" || stored.Password != "pass123" {
			t.Errorf("record changed: name=%q password=%q", stored.Name, stored.Password)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		t.Parallel()
		stored := &model.Student{ID: "student:ravi", ClassID: "class:10a", Name: "Ravi Kumar"}
		svc := NewProfileService(profileStudentRepo(stored), &mockTeacherRepo{}, testClassRepo())

		blank := "   "
		_, err := svc.UpdateStudent(context.Background(), studentIdentity(), UpdateProfileRequest{Name: &blank})
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("error = %v, want ErrNameRequired", err)
		}
	})

	t.Run("empty password rejected", func(t *testing.T) {
		t.Parallel()
		stored := &model.Student{ID: "student:ravi", ClassID: "class:10a", Name: "Ravi Kumar"}
		svc := NewProfileService(profileStudentRepo(stored), &mockTeacherRepo{}, testClassRepo())

		empty := ""
		_, err := svc.UpdateStudent(context.Background(), studentIdentity(), UpdateProfileRequest{Password: &empty})
		if !errors.Is(err, ErrPasswordRequired) {
			t.Errorf("error = %v, want ErrPasswordRequired", err)
		}
	})
}

func TestTeacherProfile_MissingRecord(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(&mockStudentRepo{}, &mockTeacherRepo{}, testClassRepo())

	_, err := svc.Teacher(context.Background(), teacherIdentity())
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("Teacher() error = %v, want ErrTeacherNotFound", err)
	}

	_, err = svc.UpdateTeacher(context.Background(), teacherIdentity(), UpdateProfileRequest{})
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("UpdateTeacher() error = %v, want ErrTeacherNotFound", err)
	}
}

func TestUpdateTeacherProfile_Subjects(t *testing.T) {
	t.Parallel()

	stored := &model.Teacher{
		ID:       "teacher:meera",
		SchoolID: "school:dps",
		Email:    "meera@dps.edu",
		Name:     "Meera Sharma",
		Subjects: []string{"Mathematics"},
		ClassIDs: []string{"class:10a"},
	}
	svc := NewProfileService(
		&mockStudentRepo{},
		&mockTeacherRepo{
			getByIDFunc: func(ctx context.Context, id string) (*model.Teacher, error) {
				return stored, nil
			},
			updateFunc: func(ctx context.Context, teacher *model.Teacher) error {
				*stored = *teacher
				return nil
			},
		},
		testClassRepo(),
	)

	profile, err := svc.UpdateTeacher(context.Background(), teacherIdentity(), UpdateProfileRequest{
		Subjects: []string{"Mathematics", " Physics ", ""},
	})
	if err != nil {
		t.Fatalf("UpdateTeacher() error = %v", err)
	}
	want := []string{"Mathematics", "Physics"}
	if len(profile.Subjects) != len(want) {
		t.Fatalf("Subjects = %v, want %v", profile.Subjects, want)
	}
	for i := range want {
		if profile.Subjects[i] != want[i] {
			t.Errorf("Subjects[%d] = %q, want %q", i, profile.Subjects[i], want[i])
		}
	}
}
