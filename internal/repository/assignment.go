package repository

import (
	"context"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// AssignmentRepository handles assignment and submission data access
type AssignmentRepository struct {
	db database.Database
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db database.Database) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create stores a new assignment
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	query := `
		CREATE assignment CONTENT {
			school: type::record($school),
			class: type::record($class),
			teacher: type::record($teacher),
			subject: $subject,
			title: $title,
			description: $description,
			due_on: $due_on,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school":      a.SchoolID,
		"class":       a.ClassID,
		"teacher":     a.TeacherID,
		"subject":     a.Subject,
		"title":       a.Title,
		"description": a.Description,
		"due_on":      formatTimePtr(a.DueOn),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	a.ID = created.ID
	a.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves an assignment by record ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
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
	return parseAssignmentRow(data), nil
}

// ListByClass returns a class's assignments, newest first
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID string) ([]*model.Assignment, error) {
	query := `SELECT * FROM assignment WHERE class = type::record($class) ORDER BY created_on DESC`
	vars := map[string]interface{}{"class": classID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	assignments := make([]*model.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, parseAssignmentRow(row))
	}
	return assignments, nil
}

// UpsertSubmission stores a student's submission, replacing any earlier one
// for the same assignment.
func (r *AssignmentRepository) UpsertSubmission(ctx context.Context, s *model.Submission) error {
	batch := database.NewAtomicBatch()
	batch.Add(
		`DELETE submission WHERE assignment = type::record($assignment) AND student = type::record($student)`,
		map[string]interface{}{"assignment": s.AssignmentID, "student": s.StudentID},
	)
	batch.Add(
		`CREATE submission CONTENT {
			assignment: type::record($assignment),
			student: type::record($student),
			student_name: $student_name,
			content: $content,
			status: $status,
			submitted_on: time::now()
		}`,
		map[string]interface{}{
			"assignment":   s.AssignmentID,
			"student":      s.StudentID,
			"student_name": s.StudentName,
			"content":      s.Content,
			"status":       string(s.Status),
		},
	)
	return batch.Execute(ctx, r.db)
}

// GetSubmission retrieves one student's submission for an assignment
func (r *AssignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID string) (*model.Submission, error) {
	query := `SELECT * FROM submission WHERE assignment = type::record($assignment) AND student = type::record($student) LIMIT 1`
	vars := map[string]interface{}{"assignment": assignmentID, "student": studentID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseSubmissionRow(data), nil
}

// ListSubmissions returns all submissions for an assignment
func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID string) ([]*model.Submission, error) {
	query := `SELECT * FROM submission WHERE assignment = type::record($assignment) ORDER BY submitted_on ASC`
	vars := map[string]interface{}{"assignment": assignmentID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	submissions := make([]*model.Submission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, parseSubmissionRow(row))
	}
	return submissions, nil
}

func parseAssignmentRow(data map[string]interface{}) *model.Assignment {
	return &model.Assignment{
		ID:          getRecordID(data, "id"),
		SchoolID:    getRecordID(data, "school"),
		ClassID:     getRecordID(data, "class"),
		TeacherID:   getRecordID(data, "teacher"),
		Subject:     getString(data, "subject"),
		Title:       getString(data, "title"),
		Description: getStringPtr(data, "description"),
		DueOn:       getTime(data, "due_on"),
		CreatedOn:   getTimeValue(data, "created_on"),
	}
}

func parseSubmissionRow(data map[string]interface{}) *model.Submission {
	return &model.Submission{
		ID:           getRecordID(data, "id"),
		AssignmentID: getRecordID(data, "assignment"),
		StudentID:    getRecordID(data, "student"),
		StudentName:  getString(data, "student_name"),
		Content:      getString(data, "content"),
		Status:       model.SubmissionStatus(getString(data, "status")),
		SubmittedOn:  getTimeValue(data, "submitted_on"),
	}
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
