package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// EventRepository defines the interface for the events feed
type EventRepository interface {
	ListBySchool(ctx context.Context, schoolID string) ([]*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
}

// PortalService serves the shared portal surfaces: class rosters and the
// school events feed.
type PortalService struct {
	rosterRepo RosterRepository
	classRepo  ClassRepository
	eventRepo  EventRepository
}

// NewPortalService creates a new portal service
func NewPortalService(rosterRepo RosterRepository, classRepo ClassRepository, eventRepo EventRepository) *PortalService {
	return &PortalService{
		rosterRepo: rosterRepo,
		classRepo:  classRepo,
		eventRepo:  eventRepo,
	}
}

// RosterEntry is one student on a class roster, without credentials
type RosterEntry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	RollNo *string `json:"roll_no,omitempty"`
}

// Roster returns the students of a class in the caller's school
func (s *PortalService) Roster(ctx context.Context, identity model.SessionIdentity, classID string) ([]RosterEntry, error) {
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

	students, err := s.rosterRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	roster := make([]RosterEntry, 0, len(students))
	for _, st := range students {
		roster = append(roster, RosterEntry{ID: st.ID, Name: st.Name, RollNo: st.RollNo})
	}
	return roster, nil
}

// Events returns the caller's school events feed
func (s *PortalService) Events(ctx context.Context, identity model.SessionIdentity) ([]*model.Event, error) {
	return s.eventRepo.ListBySchool(ctx, identity.SchoolID)
}

// CreateEventRequest carries a new feed entry
type CreateEventRequest struct {
	Title       string
	Description *string
	Date        time.Time
}

// CreateEvent publishes an event to the caller's school feed
func (s *PortalService) CreateEvent(ctx context.Context, identity model.SessionIdentity, req CreateEventRequest) (*model.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	event := &model.Event{
		SchoolID:    identity.SchoolID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
