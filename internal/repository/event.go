package repository

import (
	"context"
	"time"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// EventRepository handles the school events feed
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// ListBySchool returns a school's events, soonest first
func (r *EventRepository) ListBySchool(ctx context.Context, schoolID string) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE school = type::record($school) ORDER BY date ASC`
	vars := map[string]interface{}{"school": schoolID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, parseEventRow(row))
	}
	return events, nil
}

// Create stores a new event
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `
		CREATE event CONTENT {
			school: type::record($school),
			title: $title,
			description: $description,
			date: <datetime>$date,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school":      e.SchoolID,
		"title":       e.Title,
		"description": e.Description,
		"date":        e.Date.Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}
	e.ID = created.ID
	e.CreatedOn = created.CreatedOn
	return nil
}

func parseEventRow(data map[string]interface{}) *model.Event {
	return &model.Event{
		ID:          getRecordID(data, "id"),
		SchoolID:    getRecordID(data, "school"),
		Title:       getString(data, "title"),
		Description: getStringPtr(data, "description"),
		Date:        getTimeValue(data, "date"),
		CreatedOn:   getTimeValue(data, "created_on"),
	}
}
