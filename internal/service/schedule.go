package service

import (
	"context"
	"errors"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// ScheduleRepository defines the interface for timetable storage
type ScheduleRepository interface {
	ListByClass(ctx context.Context, classID string) ([]*model.ScheduleEntry, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*model.ScheduleEntry, error)
}

// ScheduleService serves class and teacher timetables
type ScheduleService struct {
	scheduleRepo ScheduleRepository
	classRepo    ClassRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo ScheduleRepository, classRepo ClassRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		classRepo:    classRepo,
	}
}

// ForStudent returns the timetable of the caller's class
func (s *ScheduleService) ForStudent(ctx context.Context, identity model.SessionIdentity) ([]*model.ScheduleEntry, error) {
	return s.scheduleRepo.ListByClass(ctx, identity.ClassID)
}

// ForTeacher returns every slot the caller teaches
func (s *ScheduleService) ForTeacher(ctx context.Context, identity model.SessionIdentity) ([]*model.ScheduleEntry, error) {
	return s.scheduleRepo.ListByTeacher(ctx, identity.MemberID)
}

// ForClass returns a class's timetable, for the teacher view
func (s *ScheduleService) ForClass(ctx context.Context, identity model.SessionIdentity, classID string) ([]*model.ScheduleEntry, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if class.SchoolID != identity.SchoolID {
		return nil, ErrAccessDenied
	}
	return s.scheduleRepo.ListByClass(ctx, classID)
}
