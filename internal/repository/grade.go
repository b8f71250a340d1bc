package repository

import (
	"context"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// GradeRepository handles grade data access
type GradeRepository struct {
	db database.Database
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db database.Database) *GradeRepository {
	return &GradeRepository{db: db}
}

// CreateBatch stores a set of grades atomically. Either every row of the
// grade sheet lands or none does.
func (r *GradeRepository) CreateBatch(ctx context.Context, grades []*model.Grade) error {
	if len(grades) == 0 {
		return nil
	}

	batch := database.NewAtomicBatch()
	for _, g := range grades {
		batch.Add(
			`CREATE grade CONTENT {
				school: type::record($school),
				class: type::record($class),
				student: type::record($student),
				teacher: type::record($teacher),
				subject: $subject,
				title: $title,
				score: $score,
				max_score: $max_score,
				created_on: time::now()
			}`,
			map[string]interface{}{
				"school":    g.SchoolID,
				"class":     g.ClassID,
				"student":   g.StudentID,
				"teacher":   g.TeacherID,
				"subject":   g.Subject,
				"title":     g.Title,
				"score":     g.Score,
				"max_score": g.MaxScore,
			},
		)
	}
	return batch.Execute(ctx, r.db)
}

// ListByStudent returns a student's grades, newest first
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]*model.Grade, error) {
	query := `SELECT * FROM grade WHERE student = type::record($student) ORDER BY created_on DESC`
	vars := map[string]interface{}{"student": studentID}

	return r.listGrades(ctx, query, vars)
}

// ListByClass returns all grades recorded for a class
func (r *GradeRepository) ListByClass(ctx context.Context, classID string) ([]*model.Grade, error) {
	query := `SELECT * FROM grade WHERE class = type::record($class) ORDER BY created_on DESC`
	vars := map[string]interface{}{"class": classID}

	return r.listGrades(ctx, query, vars)
}

func (r *GradeRepository) listGrades(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Grade, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	grades := make([]*model.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, parseGradeRow(row))
	}
	return grades, nil
}

func parseGradeRow(data map[string]interface{}) *model.Grade {
	return &model.Grade{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		ClassID:   getRecordID(data, "class"),
		StudentID: getRecordID(data, "student"),
		TeacherID: getRecordID(data, "teacher"),
		Subject:   getString(data, "subject"),
		Title:     getString(data, "title"),
		Score:     getFloat(data, "score"),
		MaxScore:  getFloat(data, "max_score"),
		CreatedOn: getTimeValue(data, "created_on"),
	}
}
