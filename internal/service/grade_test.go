package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

type mockGradeRepo struct {
	createBatchFunc   func(ctx context.Context, grades []*model.Grade) error
	listByStudentFunc func(ctx context.Context, studentID string) ([]*model.Grade, error)
	listByClassFunc   func(ctx context.Context, classID string) ([]*model.Grade, error)
}

func (m *mockGradeRepo) CreateBatch(ctx context.Context, grades []*model.Grade) error {
	if m.createBatchFunc != nil {
		return m.createBatchFunc(ctx, grades)
	}
	return nil
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.Grade, error) {
	if m.listByStudentFunc != nil {
		return m.listByStudentFunc(ctx, studentID)
	}
	return nil, nil
}

func (m *mockGradeRepo) ListByClass(ctx context.Context, classID string) ([]*model.Grade, error) {
	if m.listByClassFunc != nil {
		return m.listByClassFunc(ctx, classID)
	}
	return nil, nil
}

func TestRecordSheet_Success(t *testing.T) {
	t.Parallel()

	var stored []*model.Grade
	svc := NewGradeService(
		&mockGradeRepo{
			createBatchFunc: func(ctx context.Context, grades []*model.Grade) error {
				stored = grades
				return nil
			},
		},
		testRosterRepo(),
		testClassRepo(),
	)

	grades, err := svc.RecordSheet(context.Background(), teacherIdentity(), RecordSheetRequest{
		ClassID:  "class:10a",
		Subject:  "Mathematics",
		Title:    "Midterm",
		MaxScore: 100,
		Rows: []GradeRow{
			{StudentID: "student:ravi", Score: 82},
			{StudentID: "student:anita", Score: 91},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored = %d grades, want 2", len(stored))
	}
	if grades[0].TeacherID != "teacher:meera" {
		t.Errorf("teacher = %q, want teacher:meera", grades[0].TeacherID)
	}
	if grades[0].MaxScore != 100 {
		t.Errorf("max score = %f, want 100", grades[0].MaxScore)
	}
}

func TestRecordSheet_Validation(t *testing.T) {
	t.Parallel()
	svc := NewGradeService(&mockGradeRepo{}, testRosterRepo(), testClassRepo())

	valid := RecordSheetRequest{
		ClassID:  "class:10a",
		Subject:  "Mathematics",
		Title:    "Midterm",
		MaxScore: 100,
		Rows:     []GradeRow{{StudentID: "student:ravi", Score: 50}},
	}

	tests := []struct {
		name    string
		mutate  func(r *RecordSheetRequest)
		wantErr error
	}{
		{"no subject", func(r *RecordSheetRequest) { r.Subject = " " }, ErrSubjectRequired},
		{"no title", func(r *RecordSheetRequest) { r.Title = "" }, ErrTitleRequired},
		{"no rows", func(r *RecordSheetRequest) { r.Rows = nil }, ErrEmptyGradeSheet},
		{"zero max", func(r *RecordSheetRequest) { r.MaxScore = 0 }, ErrInvalidScore},
		{"negative score", func(r *RecordSheetRequest) { r.Rows[0].Score = -1 }, ErrInvalidScore},
		{"score above max", func(r *RecordSheetRequest) { r.Rows[0].Score = 101 }, ErrInvalidScore},
		{"off-roster student", func(r *RecordSheetRequest) { r.Rows[0].StudentID = "student:ghost" }, ErrUnknownStudent},
		{"foreign class", func(r *RecordSheetRequest) { r.ClassID = "class:other" }, ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Rows = []GradeRow{valid.Rows[0]}
			tt.mutate(&req)
			_, err := svc.RecordSheet(context.Background(), teacherIdentity(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStudentGrades_Summaries(t *testing.T) {
	t.Parallel()

	grades := []*model.Grade{
		{Subject: "Mathematics", Score: 80, MaxScore: 100},
		{Subject: "Mathematics", Score: 90, MaxScore: 100},
		{Subject: "History", Score: 70, MaxScore: 100},
	}
	svc := NewGradeService(
		&mockGradeRepo{
			listByStudentFunc: func(ctx context.Context, studentID string) ([]*model.Grade, error) {
				return grades, nil
			},
		},
		testRosterRepo(),
		testClassRepo(),
	)

	identity := model.SessionIdentity{MemberID: "student:ravi", Role: model.RoleStudent}
	got, summaries, err := svc.StudentGrades(context.Background(), identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("grades = %d, want 3", len(got))
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	// Sorted by subject: History then Mathematics.
	if summaries[0].Subject != "History" || summaries[0].Count != 1 {
		t.Errorf("first summary = %+v, want History with 1 grade", summaries[0])
	}
	math := summaries[1]
	if math.Min != 80 || math.Max != 90 || math.Average != 85 {
		t.Errorf("math summary = %+v, want min 80 max 90 avg 85", math)
	}
}
