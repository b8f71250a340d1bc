package repository

import (
	"context"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// ScheduleRepository handles timetable data access
type ScheduleRepository struct {
	db database.Database
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db database.Database) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByClass returns a class's timetable ordered by day and period
func (r *ScheduleRepository) ListByClass(ctx context.Context, classID string) ([]*model.ScheduleEntry, error) {
	query := `SELECT * FROM schedule_entry WHERE class = type::record($class) ORDER BY day ASC, period ASC`
	vars := map[string]interface{}{"class": classID}

	return r.listEntries(ctx, query, vars)
}

// ListByTeacher returns every slot a teacher is assigned to
func (r *ScheduleRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*model.ScheduleEntry, error) {
	query := `SELECT * FROM schedule_entry WHERE teacher = type::record($teacher) ORDER BY day ASC, period ASC`
	vars := map[string]interface{}{"teacher": teacherID}

	return r.listEntries(ctx, query, vars)
}

// Create stores a new timetable slot
func (r *ScheduleRepository) Create(ctx context.Context, e *model.ScheduleEntry) error {
	query := `
		CREATE schedule_entry CONTENT {
			school: type::record($school),
			class: type::record($class),
			teacher: $teacher,
			day: $day,
			period: $period,
			subject: $subject,
			start_time: $start_time,
			end_time: $end_time,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"school":     e.SchoolID,
		"class":      e.ClassID,
		"teacher":    e.TeacherID,
		"day":        e.Day,
		"period":     e.Period,
		"subject":    e.Subject,
		"start_time": e.StartTime,
		"end_time":   e.EndTime,
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

func (r *ScheduleRepository) listEntries(ctx context.Context, query string, vars map[string]interface{}) ([]*model.ScheduleEntry, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	entries := make([]*model.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, parseScheduleRow(row))
	}
	return entries, nil
}

func parseScheduleRow(data map[string]interface{}) *model.ScheduleEntry {
	return &model.ScheduleEntry{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		ClassID:   getRecordID(data, "class"),
		TeacherID: getRecordID(data, "teacher"),
		Day:       getString(data, "day"),
		Period:    getInt(data, "period"),
		Subject:   getString(data, "subject"),
		StartTime: getString(data, "start_time"),
		EndTime:   getString(data, "end_time"),
		CreatedOn: getTimeValue(data, "created_on"),
	}
}
