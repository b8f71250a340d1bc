package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
)

// AttendanceRepository defines the interface for attendance sheet storage
type AttendanceRepository interface {
	UpsertSheet(ctx context.Context, sheet *model.AttendanceSheet) error
	GetSheet(ctx context.Context, classID, date string) (*model.AttendanceSheet, error)
	ListByClass(ctx context.Context, classID string) ([]*model.AttendanceSheet, error)
}

// RosterRepository defines the interface for class roster lookup
type RosterRepository interface {
	ListByClass(ctx context.Context, classID string) ([]*model.Student, error)
}

// ClassRepository defines the interface for class lookup
type ClassRepository interface {
	GetByID(ctx context.Context, id string) (*model.Class, error)
}

// AttendanceService manages attendance sheets for classes
type AttendanceService struct {
	attendanceRepo AttendanceRepository
	rosterRepo     RosterRepository
	classRepo      ClassRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo AttendanceRepository, rosterRepo RosterRepository, classRepo ClassRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		rosterRepo:     rosterRepo,
		classRepo:      classRepo,
	}
}

// MarkInput is one student's mark in a sheet submission
type MarkInput struct {
	StudentID string
	Status    model.AttendanceStatus
}

// MarkSheet records attendance for a class on a date, replacing any sheet
// already stored for that class and date. Every entry must reference a
// student on the class roster.
func (s *AttendanceService) MarkSheet(ctx context.Context, identity model.SessionIdentity, classID, date string, marks []MarkInput) (*model.AttendanceSheet, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	if len(marks) == 0 {
		return nil, ErrEmptySheet
	}

	roster, err := s.rosterRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(roster))
	for _, st := range roster {
		names[st.ID] = st.Name
	}

	entries := make([]model.AttendanceEntry, 0, len(marks))
	for _, m := range marks {
		if !m.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		name, ok := names[m.StudentID]
		if !ok {
			return nil, ErrUnknownStudent
		}
		entries = append(entries, model.AttendanceEntry{
			StudentID:   m.StudentID,
			StudentName: name,
			Status:      m.Status,
		})
	}

	sheet := &model.AttendanceSheet{
		SchoolID:  identity.SchoolID,
		ClassID:   classID,
		Date:      date,
		TeacherID: identity.MemberID,
		Entries:   entries,
	}
	if err := s.attendanceRepo.UpsertSheet(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// Sheet returns the sheet stored for a class and date
func (s *AttendanceService) Sheet(ctx context.Context, identity model.SessionIdentity, classID, date string) (*model.AttendanceSheet, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}

	sheet, err := s.attendanceRepo.GetSheet(ctx, classID, date)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrSheetNotFound
		}
		return nil, err
	}
	return sheet, nil
}

// History returns all sheets for a class, newest first
func (s *AttendanceService) History(ctx context.Context, identity model.SessionIdentity, classID string) ([]*model.AttendanceSheet, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByClass(ctx, classID)
}

// StudentRecord is one date's mark in a student's attendance history
type StudentRecord struct {
	Date   string                 `json:"date"`
	Status model.AttendanceStatus `json:"status"`
}

// StudentHistory returns a student's own marks plus an aggregate summary,
// scanning the sheets of the student's class.
func (s *AttendanceService) StudentHistory(ctx context.Context, identity model.SessionIdentity) ([]StudentRecord, *model.AttendanceSummary, error) {
	sheets, err := s.attendanceRepo.ListByClass(ctx, identity.ClassID)
	if err != nil {
		return nil, nil, err
	}

	records := make([]StudentRecord, 0, len(sheets))
	summary := &model.AttendanceSummary{}
	for _, sheet := range sheets {
		for _, entry := range sheet.Entries {
			if entry.StudentID != identity.MemberID {
				continue
			}
			records = append(records, StudentRecord{Date: sheet.Date, Status: entry.Status})
			summary.Total++
			switch entry.Status {
			case model.AttendancePresent:
				summary.Present++
			case model.AttendanceAbsent:
				summary.Absent++
			case model.AttendanceLate:
				summary.Late++
			}
		}
	}
	if summary.Total > 0 {
		// Late still counts as attended for the rate.
		summary.Rate = float64(summary.Present+summary.Late) / float64(summary.Total)
	}
	return records, summary, nil
}

// ExportSheet renders a class's attendance history as a spreadsheet, one
// row per student and one column per recorded date.
func (s *AttendanceService) ExportSheet(ctx context.Context, identity model.SessionIdentity, classID string) ([]byte, error) {
	if err := s.authorizeClass(ctx, identity, classID); err != nil {
		return nil, err
	}

	sheets, err := s.attendanceRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	roster, err := s.rosterRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const tab = "Attendance"
	index, err := f.NewSheet(tab)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	// Header row: student name, then dates oldest to newest.
	if err := f.SetCellValue(tab, "A1", "Student"); err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(sheets))
	marks := make(map[string]map[string]model.AttendanceStatus, len(sheets))
	for i := len(sheets) - 1; i >= 0; i-- {
		sheet := sheets[i]
		dates = append(dates, sheet.Date)
		byStudent := make(map[string]model.AttendanceStatus, len(sheet.Entries))
		for _, entry := range sheet.Entries {
			byStudent[entry.StudentID] = entry.Status
		}
		marks[sheet.Date] = byStudent
	}
	for col, date := range dates {
		cell, err := excelize.CoordinatesToCellName(col+2, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(tab, cell, date); err != nil {
			return nil, err
		}
	}

	for row, student := range roster {
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(tab, cell, student.Name); err != nil {
			return nil, err
		}
		for col, date := range dates {
			status, ok := marks[date][student.ID]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(tab, cell, string(status)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// authorizeClass confirms the class exists and belongs to the caller's school
func (s *AttendanceService) authorizeClass(ctx context.Context, identity model.SessionIdentity, classID string) error {
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
