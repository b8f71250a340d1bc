package repository

import (
	"context"
	"strings"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// TeacherRepository handles teacher membership data access
type TeacherRepository struct {
	db database.Database
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db database.Database) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// GetByEmail finds a teacher by email within a school. Both sides are
// case-folded before comparison.
func (r *TeacherRepository) GetByEmail(ctx context.Context, schoolID, email string) (*model.Teacher, error) {
	query := `SELECT * FROM teacher WHERE school = type::record($school) AND string::lowercase(email) = $email LIMIT 1`
	vars := map[string]interface{}{
		"school": schoolID,
		"email":  strings.ToLower(email),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseTeacherRow(data), nil
}

// GetByID retrieves a teacher by record ID
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseTeacherRow(data), nil
}

// Create stores a new teacher
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		CREATE teacher CONTENT {
			school: type::record($school),
			email: $email,
			password: $password,
			name: $name,
			subjects: $subjects,
			classes: $classes,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school":   teacher.SchoolID,
		"email":    teacher.Email,
		"password": teacher.Password,
		"name":     teacher.Name,
		"subjects": teacher.Subjects,
		"classes":  teacher.ClassIDs,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	teacher.ID = created.ID
	teacher.CreatedOn = created.CreatedOn
	teacher.UpdatedOn = created.UpdatedOn
	return nil
}

// Update writes the self-editable profile fields back
func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			password = $password,
			subjects = $subjects,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":       teacher.ID,
		"name":     teacher.Name,
		"password": teacher.Password,
		"subjects": teacher.Subjects,
	}

	return r.db.Execute(ctx, query, vars)
}

func parseTeacherRow(data map[string]interface{}) *model.Teacher {
	classIDs := make([]string, 0)
	if raw, ok := data["classes"].([]interface{}); ok {
		for _, item := range raw {
			classIDs = append(classIDs, convertSurrealID(item))
		}
	}

	return &model.Teacher{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		Email:     getString(data, "email"),
		Password:  getString(data, "password"),
		Name:      getString(data, "name"),
		Subjects:  getStringSlice(data, "subjects"),
		ClassIDs:  classIDs,
		CreatedOn: getTimeValue(data, "created_on"),
		UpdatedOn: getTimeValue(data, "updated_on"),
	}
}
