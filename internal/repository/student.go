package repository

import (
	"context"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// StudentRepository handles student membership data access
type StudentRepository struct {
	db database.Database
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db database.Database) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetByUsername finds a student by exact username within a school. The match
// is case-sensitive: "Ravi" and "ravi" are different students.
func (r *StudentRepository) GetByUsername(ctx context.Context, schoolID, username string) (*model.Student, error) {
	query := `SELECT * FROM student WHERE school = type::record($school) AND username = $username LIMIT 1`
	vars := map[string]interface{}{
		"school":   schoolID,
		"username": username,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseStudentRow(data), nil
}

// GetByID retrieves a student by record ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
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
	return parseStudentRow(data), nil
}

// ListByClass returns the roster of a class ordered by name
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]*model.Student, error) {
	query := `SELECT * FROM student WHERE class = type::record($class) ORDER BY name ASC`
	vars := map[string]interface{}{"class": classID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	students := make([]*model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, parseStudentRow(row))
	}
	return students, nil
}

// Create stores a new student
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		CREATE student CONTENT {
			school: type::record($school),
			class: type::record($class),
			username: $username,
			password: $password,
			name: $name,
			roll_no: $roll_no,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school":   student.SchoolID,
		"class":    student.ClassID,
		"username": student.Username,
		"password": student.Password,
		"name":     student.Name,
		"roll_no":  student.RollNo,
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
	student.ID = created.ID
	student.CreatedOn = created.CreatedOn
	student.UpdatedOn = created.UpdatedOn
	return nil
}

// Update writes the self-editable profile fields back
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			password = $password,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":       student.ID,
		"name":     student.Name,
		"password": student.Password,
	}

	return r.db.Execute(ctx, query, vars)
}

func parseStudentRow(data map[string]interface{}) *model.Student {
	return &model.Student{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		ClassID:   getRecordID(data, "class"),
		Username:  getString(data, "username"),
		Password:  getString(data, "password"),
		Name:      getString(data, "name"),
		RollNo:    getStringPtr(data, "roll_no"),
		CreatedOn: getTimeValue(data, "created_on"),
		UpdatedOn: getTimeValue(data, "updated_on"),
	}
}
