package repository

import (
	"context"
	"fmt"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// SchoolRepository handles school and class data access
type SchoolRepository struct {
	db database.Database
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db database.Database) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// GetByCode looks up a school by its tenant code. When several schools carry
// the same code the oldest record wins, so lookups stay deterministic.
func (r *SchoolRepository) GetByCode(ctx context.Context, code string) (*model.School, error) {
	query := `SELECT * FROM school WHERE code = $code ORDER BY created_on ASC LIMIT 1`
	vars := map[string]interface{}{"code": code}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return parseSchoolResult(result)
}

// GetByID retrieves a school by record ID
func (r *SchoolRepository) GetByID(ctx context.Context, id string) (*model.School, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return parseSchoolResult(result)
}

// Create stores a new school
func (r *SchoolRepository) Create(ctx context.Context, school *model.School) error {
	query := `
		CREATE school CONTENT {
			name: $name,
			code: $code,
			address: $address,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":    school.Name,
		"code":    school.Code,
		"address": school.Address,
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
	school.ID = created.ID
	school.CreatedOn = created.CreatedOn
	school.UpdatedOn = created.UpdatedOn
	return nil
}

// CountByCode reports how many schools share a tenant code. Used by the
// onboarding CLI to warn about ambiguous codes.
func (r *SchoolRepository) CountByCode(ctx context.Context, code string) (int, error) {
	query := `SELECT count() AS count FROM school WHERE code = $code GROUP ALL`
	vars := map[string]interface{}{"code": code}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return 0, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return 0, nil
	}
	return getInt(data, "count"), nil
}

func parseSchoolResult(result interface{}) (*model.School, error) {
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}

	return &model.School{
		ID:        getRecordID(data, "id"),
		Name:      getString(data, "name"),
		Code:      getString(data, "code"),
		Address:   getStringPtr(data, "address"),
		CreatedOn: getTimeValue(data, "created_on"),
		UpdatedOn: getTimeValue(data, "updated_on"),
	}, nil
}

// ClassRepository handles class data access
type ClassRepository struct {
	db database.Database
}

// NewClassRepository creates a new class repository
func NewClassRepository(db database.Database) *ClassRepository {
	return &ClassRepository{db: db}
}

// GetByID retrieves a class by record ID
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*model.Class, error) {
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
	return parseClassRow(data), nil
}

// GetByName retrieves a class by its display name within a school
func (r *ClassRepository) GetByName(ctx context.Context, schoolID, name string) (*model.Class, error) {
	query := `SELECT * FROM class WHERE school = type::record($school) AND name = $name LIMIT 1`
	vars := map[string]interface{}{"school": schoolID, "name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseClassRow(data), nil
}

// ListBySchool returns all classes in a school
func (r *ClassRepository) ListBySchool(ctx context.Context, schoolID string) ([]*model.Class, error) {
	query := `SELECT * FROM class WHERE school = type::record($school) ORDER BY name ASC`
	vars := map[string]interface{}{"school": schoolID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	classes := make([]*model.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, parseClassRow(row))
	}
	return classes, nil
}

// Create stores a new class
func (r *ClassRepository) Create(ctx context.Context, class *model.Class) error {
	query := `
		CREATE class CONTENT {
			school: type::record($school),
			name: $name,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school": class.SchoolID,
		"name":   class.Name,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	class.ID = created.ID
	class.CreatedOn = created.CreatedOn
	return nil
}

func parseClassRow(data map[string]interface{}) *model.Class {
	return &model.Class{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		Name:      getString(data, "name"),
		CreatedOn: getTimeValue(data, "created_on"),
	}
}
