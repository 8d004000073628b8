package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appauth "github.com/selim/srms/internal/app/auth"
	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/validation"
)

// MarksInput carries a new marks entry. Marks above MaxMarks are accepted:
// the ledger keeps the historical permissiveness (bonus marks exist), so only
// the lower bounds are enforced.
type MarksInput struct {
	RollNo   string `validate:"required,max=20"`
	Subject  string `validate:"required,max=100"`
	Marks    int    `validate:"min=0"`
	MaxMarks int    `validate:"required,min=1"`
	ExamType string `validate:"required,oneof=Mid-Term End-Term Assignment Quiz Project"`
}

// RecordService exposes the role-gated record ledger
type RecordService struct {
	students   StudentStore
	marks      MarksStore
	attendance AttendanceStore
	logger     zerolog.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(students StudentStore, marks MarksStore, attendance AttendanceStore, logger zerolog.Logger) *RecordService {
	return &RecordService{
		students:   students,
		marks:      marks,
		attendance: attendance,
		logger:     logger,
	}
}

// AddMarks appends a marks entry for a student and returns the assigned id.
// Entries are never merged; repeated (student, subject) pairs are distinct
// attempts or exam types.
func (s *RecordService) AddMarks(ctx context.Context, session models.Session, input MarksInput) (int64, error) {
	if err := appauth.RequireTeacher(session); err != nil {
		return 0, err
	}
	if err := validation.Struct(input); err != nil {
		return 0, err
	}

	exists, err := s.students.Exists(ctx, input.RollNo)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrStudentNotFound
	}

	entry := &models.MarksEntry{
		RollNo:   input.RollNo,
		Subject:  input.Subject,
		Marks:    input.Marks,
		MaxMarks: input.MaxMarks,
		ExamType: input.ExamType,
	}
	return s.marks.Add(ctx, entry)
}

// DeleteMarks removes one marks entry; deleting a missing id is an error
func (s *RecordService) DeleteMarks(ctx context.Context, session models.Session, id int64) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}
	return s.marks.Delete(ctx, id)
}

// ListMarks returns a student's marks entries in insertion order
func (s *RecordService) ListMarks(ctx context.Context, session models.Session, rollNo string) ([]models.MarksEntry, error) {
	if err := appauth.RequireReadAccess(session, rollNo); err != nil {
		return nil, err
	}
	return s.marks.ListByRoll(ctx, rollNo)
}

// MarkAttendance upserts the attendance status for one (student, subject)
// pair. Marking a pair that already has a record overwrites its status;
// attendance is idempotent per pair, marks are not.
func (s *RecordService) MarkAttendance(ctx context.Context, session models.Session, rollNo, subject string, status models.AttendanceStatus) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}
	if subject == "" {
		return apperrors.NewValidationError("subject is required")
	}
	if !status.Storable() {
		return apperrors.NewValidationError(fmt.Sprintf("status %q cannot be stored", status))
	}

	exists, err := s.students.Exists(ctx, rollNo)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrStudentNotFound
	}

	return s.attendance.Upsert(ctx, rollNo, subject, status)
}

// MarkCohortAttendance saves attendance for a whole cohort in one call and
// returns the number of students saved. Rows are independent upserts; a
// failure stops the sweep and reports how far it got.
func (s *RecordService) MarkCohortAttendance(ctx context.Context, session models.Session, subject string, statuses map[string]models.AttendanceStatus) (int, error) {
	if err := appauth.RequireTeacher(session); err != nil {
		return 0, err
	}
	if subject == "" {
		return 0, apperrors.NewValidationError("subject is required")
	}
	for rollNo, status := range statuses {
		if !status.Storable() {
			return 0, apperrors.NewValidationError(fmt.Sprintf("status %q for %s cannot be stored", status, rollNo))
		}
	}

	saved := 0
	for rollNo, status := range statuses {
		if err := s.attendance.Upsert(ctx, rollNo, subject, status); err != nil {
			return saved, err
		}
		saved++
	}

	s.logger.Info().Str("subject", subject).Int("saved", saved).Msg("Cohort attendance saved")
	return saved, nil
}

// DeleteAttendance removes one attendance entry; the (student, subject)
// pair reverts to Not Marked.
func (s *RecordService) DeleteAttendance(ctx context.Context, session models.Session, id int64) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}
	return s.attendance.Delete(ctx, id)
}

// ListAttendance returns a student's stored attendance entries
func (s *RecordService) ListAttendance(ctx context.Context, session models.Session, rollNo string) ([]models.AttendanceEntry, error) {
	if err := appauth.RequireReadAccess(session, rollNo); err != nil {
		return nil, err
	}
	return s.attendance.ListByRoll(ctx, rollNo)
}
