package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// AssignmentRepository defines the interface for assignment storage
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByClass(ctx context.Context, classID string) ([]*model.Assignment, error)
	UpsertSubmission(ctx context.Context, s *model.Submission) error
	GetSubmission(ctx context.Context, assignmentID, studentID string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID string) ([]*model.Submission, error)
}

// AssignmentService manages assignments and student submissions
type AssignmentService struct {
	assignmentRepo AssignmentRepository
	classRepo      ClassRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo AssignmentRepository, classRepo ClassRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		classRepo:      classRepo,
	}
}

// CreateAssignmentRequest carries the fields a teacher sets on new work
type CreateAssignmentRequest struct {
	ClassID     string
	Subject     string
	Title       string
	Description *string
	DueOn       *time.Time
}

// Create publishes an assignment to a class
func (s *AssignmentService) Create(ctx context.Context, identity model.SessionIdentity, req CreateAssignmentRequest) (*model.Assignment, error) {
	if err := s.authorizeClass(ctx, identity, req.ClassID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	assignment := &model.Assignment{
		SchoolID:    identity.SchoolID,
		ClassID:     req.ClassID,
		TeacherID:   identity.MemberID,
		Subject:     strings.TrimSpace(req.Subject),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueOn:       req.DueOn,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListForClass returns a class's assignments for the teacher view
func (s *AssignmentService) ListForClass(ctx context.Context, identity model.SessionIdentity, classID string) ([]*model.Assignment, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListByClass(ctx, classID)
}

// ListForStudent returns the caller's class assignments joined with their
// own submission state. Submission lookups fan out concurrently, one per
// assignment.
func (s *AssignmentService) ListForStudent(ctx context.Context, identity model.SessionIdentity) ([]*model.AssignmentView, error) {
	assignments, err := s.assignmentRepo.ListByClass(ctx, identity.ClassID)
	if err != nil {
		return nil, err
	}

	views := make([]*model.AssignmentView, len(assignments))
	errs := make([]error, len(assignments))
	var wg sync.WaitGroup
	for i, a := range assignments {
		wg.Add(1)
		go func(i int, a *model.Assignment) {
			defer wg.Done()
			view := &model.AssignmentView{Assignment: *a}
			sub, err := s.assignmentRepo.GetSubmission(ctx, a.ID, identity.MemberID)
			switch {
			case err == nil:
				view.Submitted = true
				view.SubmittedOn = &sub.SubmittedOn
			case errors.Is(err, database.ErrNotFound):
				// No submission yet.
			default:
				errs[i] = err
				return
			}
			views[i] = view
		}(i, a)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return views, nil
}

// Submit records the caller's answer to an assignment, replacing any earlier
// submission. Submissions after the due date are marked late.
func (s *AssignmentService) Submit(ctx context.Context, identity model.SessionIdentity, assignmentID, content string) (*model.Submission, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.ClassID != identity.ClassID {
		return nil, ErrAccessDenied
	}

	status := model.SubmissionSubmitted
	if assignment.DueOn != nil && time.Now().After(*assignment.DueOn) {
		status = model.SubmissionLate
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    identity.MemberID,
		StudentName:  identity.Name,
		Content:      content,
		Status:       status,
		SubmittedOn:  time.Now(),
	}
	if err := s.assignmentRepo.UpsertSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// Submissions returns every submission for an assignment, for the teacher view
func (s *AssignmentService) Submissions(ctx context.Context, identity model.SessionIdentity, assignmentID string) ([]*model.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.SchoolID != identity.SchoolID {
		return nil, ErrAccessDenied
	}
	return s.assignmentRepo.ListSubmissions(ctx, assignmentID)
}

func (s *AssignmentService) authorizeClass(ctx context.Context, identity model.SessionIdentity, classID string) error {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if class.SchoolID != identity.SchoolID {
		return ErrAccessDenied
	}
	return nil
}
