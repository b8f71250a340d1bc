package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// GradeRepository defines the interface for grade storage
type GradeRepository interface {
	CreateBatch(ctx context.Context, grades []*model.Grade) error
	ListByStudent(ctx context.Context, studentID string) ([]*model.Grade, error)
	ListByClass(ctx context.Context, classID string) ([]*model.Grade, error)
}

// GradeService manages grade sheets and per-student summaries
type GradeService struct {
	gradeRepo  GradeRepository
	rosterRepo RosterRepository
	classRepo  ClassRepository
}

// NewGradeService creates a new grade service
func NewGradeService(gradeRepo GradeRepository, rosterRepo RosterRepository, classRepo ClassRepository) *GradeService {
	return &GradeService{
		gradeRepo:  gradeRepo,
		rosterRepo: rosterRepo,
		classRepo:  classRepo,
	}
}

// GradeRow is one student's score in a submitted grade sheet
type GradeRow struct {
	StudentID string
	Score     float64
}

// RecordSheetRequest carries a full grade sheet for one assessment
type RecordSheetRequest struct {
	ClassID  string
	Subject  string
	Title    string
	MaxScore float64
	Rows     []GradeRow
}

// RecordSheet stores a grade sheet atomically. Every row must reference a
// student on the class roster and score within [0, MaxScore]; a bad row
// rejects the whole sheet.
func (s *GradeService) RecordSheet(ctx context.Context, identity model.SessionIdentity, req RecordSheetRequest) ([]*model.Grade, error) {
	if err := s.authorizeClass(ctx, identity, req.ClassID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrSubjectRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if len(req.Rows) == 0 {
		return nil, ErrEmptyGradeSheet
	}
	if req.MaxScore <= 0 {
		return nil, ErrInvalidScore
	}

	roster, err := s.rosterRepo.ListByClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	onRoster := make(map[string]bool, len(roster))
	for _, st := range roster {
		onRoster[st.ID] = true
	}

	grades := make([]*model.Grade, 0, len(req.Rows))
	for _, row := range req.Rows {
		if !onRoster[row.StudentID] {
			return nil, ErrUnknownStudent
		}
		if row.Score < 0 || row.Score > req.MaxScore {
			return nil, ErrInvalidScore
		}
		grades = append(grades, &model.Grade{
			SchoolID:  identity.SchoolID,
			ClassID:   req.ClassID,
			StudentID: row.StudentID,
			TeacherID: identity.MemberID,
			Subject:   strings.TrimSpace(req.Subject),
			Title:     strings.TrimSpace(req.Title),
			Score:     row.Score,
			MaxScore:  req.MaxScore,
		})
	}

	if err := s.gradeRepo.CreateBatch(ctx, grades); err != nil {
		return nil, err
	}
	return grades, nil
}

// StudentGrades returns the caller's grades plus per-subject summaries
func (s *GradeService) StudentGrades(ctx context.Context, identity model.SessionIdentity) ([]*model.Grade, []*model.GradeSummary, error) {
	grades, err := s.gradeRepo.ListByStudent(ctx, identity.MemberID)
	if err != nil {
		return nil, nil, err
	}
	return grades, summarize(grades), nil
}

// ClassGrades returns every grade recorded for a class, for the teacher view
func (s *GradeService) ClassGrades(ctx context.Context, identity model.SessionIdentity, classID string) ([]*model.Grade, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}
	return s.gradeRepo.ListByClass(ctx, classID)
}

// summarize folds grades into per-subject min/max/average aggregates
func summarize(grades []*model.Grade) []*model.GradeSummary {
	bySubject := make(map[string]*model.GradeSummary)
	totals := make(map[string]float64)
	for _, g := range grades {
		summary, ok := bySubject[g.Subject]
		if !ok {
			summary = &model.GradeSummary{Subject: g.Subject, Min: g.Score, Max: g.Score}
			bySubject[g.Subject] = summary
		}
		summary.Count++
		totals[g.Subject] += g.Score
		if g.Score < summary.Min {
			summary.Min = g.Score
		}
		if g.Score > summary.Max {
			summary.Max = g.Score
		}
	}

	summaries := make([]*model.GradeSummary, 0, len(bySubject))
	for subject, summary := range bySubject {
		summary.Average = totals[subject] / float64(summary.Count)
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Subject < summaries[j].Subject
	})
	return summaries
}

func (s *GradeService) authorizeClass(ctx context.Context, identity model.SessionIdentity, classID string) error {
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
