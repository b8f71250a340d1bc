package repository

import (
	"context"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// AttendanceRepository handles attendance sheet data access. A sheet is one
// document holding every mark for a class on a calendar date.
type AttendanceRepository struct {
	db database.Database
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db database.Database) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertSheet replaces the sheet for a class and date. The delete and create
// run in one atomic batch so a concurrent reader never sees a missing sheet.
func (r *AttendanceRepository) UpsertSheet(ctx context.Context, sheet *model.AttendanceSheet) error {
	entries := make([]map[string]interface{}, 0, len(sheet.Entries))
	for _, e := range sheet.Entries {
		entries = append(entries, map[string]interface{}{
			"student":      e.StudentID,
			"student_name": e.StudentName,
			"status":       string(e.Status),
		})
	}

	batch := database.NewAtomicBatch()
	batch.Add(
		`DELETE attendance_sheet WHERE class = type::record($class) AND date = $date`,
		map[string]interface{}{"class": sheet.ClassID, "date": sheet.Date},
	)
	batch.Add(
		`CREATE attendance_sheet CONTENT {
			school: type::record($school),
			class: type::record($class),
			date: $date,
			teacher: type::record($teacher),
			entries: $entries,
			created_on: time::now(),
			updated_on: time::now()
		}`,
		map[string]interface{}{
			"school":  sheet.SchoolID,
			"class":   sheet.ClassID,
			"date":    sheet.Date,
			"teacher": sheet.TeacherID,
			"entries": entries,
		},
	)
	return batch.Execute(ctx, r.db)
}

// GetSheet retrieves the sheet for a class and date
func (r *AttendanceRepository) GetSheet(ctx context.Context, classID, date string) (*model.AttendanceSheet, error) {
	query := `SELECT * FROM attendance_sheet WHERE class = type::record($class) AND date = $date LIMIT 1`
	vars := map[string]interface{}{"class": classID, "date": date}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	data, ok := unwrapRow(result)
	if !ok {
		return nil, database.ErrNotFound
	}
	return parseAttendanceRow(data), nil
}

// ListByClass returns all sheets for a class, newest first
func (r *AttendanceRepository) ListByClass(ctx context.Context, classID string) ([]*model.AttendanceSheet, error) {
	query := `SELECT * FROM attendance_sheet WHERE class = type::record($class) ORDER BY date DESC`
	vars := map[string]interface{}{"class": classID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := unwrapRows(result)
	sheets := make([]*model.AttendanceSheet, 0, len(rows))
	for _, row := range rows {
		sheets = append(sheets, parseAttendanceRow(row))
	}
	return sheets, nil
}

func parseAttendanceRow(data map[string]interface{}) *model.AttendanceSheet {
	sheet := &model.AttendanceSheet{
		ID:        getRecordID(data, "id"),
		SchoolID:  getRecordID(data, "school"),
		ClassID:   getRecordID(data, "class"),
		Date:      getString(data, "date"),
		TeacherID: getRecordID(data, "teacher"),
		CreatedOn: getTimeValue(data, "created_on"),
		UpdatedOn: getTimeValue(data, "updated_on"),
	}

	if raw, ok := data["entries"].([]interface{}); ok {
		sheet.Entries = make([]model.AttendanceEntry, 0, len(raw))
		for _, item := range raw {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			sheet.Entries = append(sheet.Entries, model.AttendanceEntry{
				StudentID:   getRecordID(entry, "student"),
				StudentName: getString(entry, "student_name"),
				Status:      model.AttendanceStatus(getString(entry, "status")),
			})
		}
	}

	return sheet
}
