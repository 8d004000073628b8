package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
)

func newRecordEnv(t *testing.T) (*RecordService, *testEnv) {
	t.Helper()
	env := newTestEnv()
	svc := NewRecordService(env.students, env.marks, env.attendance, zerolog.Nop())
	require.NoError(t, env.students.Add(context.Background(), &models.Student{
		RollNo: "CS-101", Name: "Alice", Branch: "CS", Year: 2, Gender: "Female",
	}))
	return svc, env
}

func TestAddMarks(t *testing.T) {
	svc, env := newRecordEnv(t)
	ctx := context.Background()

	id, err := svc.AddMarks(ctx, teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    80,
		MaxMarks: 100,
		ExamType: "Mid-Term",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// Same (student, subject) again is a second entry, not an overwrite.
	id2, err := svc.AddMarks(ctx, teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    90,
		MaxMarks: 100,
		ExamType: "End-Term",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	entries, err := env.marks.ListByRoll(ctx, "CS-101")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAddMarks_UnknownStudent(t *testing.T) {
	svc, _ := newRecordEnv(t)

	_, err := svc.AddMarks(context.Background(), teacherSession(), MarksInput{
		RollNo:   "XX-999",
		Subject:  "DBMS",
		Marks:    80,
		MaxMarks: 100,
		ExamType: "Quiz",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAddMarks_Validation(t *testing.T) {
	svc, _ := newRecordEnv(t)
	ctx := context.Background()

	_, err := svc.AddMarks(ctx, teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    80,
		MaxMarks: 100,
		ExamType: "Surprise-Test",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.AddMarks(ctx, teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    80,
		ExamType: "Quiz",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddMarks_AboveMaxAllowed(t *testing.T) {
	svc, _ := newRecordEnv(t)

	_, err := svc.AddMarks(context.Background(), teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    105,
		MaxMarks: 100,
		ExamType: "Project",
	})
	assert.NoError(t, err)
}

func TestAddMarks_StudentForbidden(t *testing.T) {
	svc, _ := newRecordEnv(t)

	_, err := svc.AddMarks(context.Background(), studentSession("CS-101"), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    100,
		MaxMarks: 100,
		ExamType: "Quiz",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteMarks(t *testing.T) {
	svc, _ := newRecordEnv(t)
	ctx := context.Background()

	id, err := svc.AddMarks(ctx, teacherSession(), MarksInput{
		RollNo:   "CS-101",
		Subject:  "DBMS",
		Marks:    80,
		MaxMarks: 100,
		ExamType: "Quiz",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMarks(ctx, teacherSession(), id))
	assert.ErrorIs(t, svc.DeleteMarks(ctx, teacherSession(), id), apperrors.ErrMarksNotFound)
}

func TestListMarks_ReadAccess(t *testing.T) {
	svc, _ := newRecordEnv(t)
	ctx := context.Background()

	_, err := svc.ListMarks(ctx, studentSession("CS-101"), "CS-101")
	assert.NoError(t, err)

	_, err = svc.ListMarks(ctx, studentSession("CS-102"), "CS-101")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.ListMarks(ctx, teacherSession(), "CS-101")
	assert.NoError(t, err)
}

func TestMarkAttendance_Overwrites(t *testing.T) {
	svc, env := newRecordEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkAttendance(ctx, teacherSession(), "CS-101", "DBMS", models.StatusPresent))
	require.NoError(t, svc.MarkAttendance(ctx, teacherSession(), "CS-101", "DBMS", models.StatusAbsent))

	entries, err := env.attendance.ListByRoll(ctx, "CS-101")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusAbsent, entries[0].Status)
}

func TestMarkAttendance_Rejections(t *testing.T) {
	svc, _ := newRecordEnv(t)
	ctx := context.Background()

	err := svc.MarkAttendance(ctx, teacherSession(), "CS-101", "DBMS", models.StatusNotMarked)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.MarkAttendance(ctx, teacherSession(), "CS-101", "", models.StatusPresent)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.MarkAttendance(ctx, teacherSession(), "XX-999", "DBMS", models.StatusPresent)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	err = svc.MarkAttendance(ctx, studentSession("CS-101"), "CS-101", "DBMS", models.StatusPresent)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestMarkCohortAttendance(t *testing.T) {
	svc, env := newRecordEnv(t)
	ctx := context.Background()

	saved, err := svc.MarkCohortAttendance(ctx, teacherSession(), "DBMS", map[string]models.AttendanceStatus{
		"CS-101": models.StatusPresent,
		"CS-102": models.StatusAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Len(t, env.attendance.entries, 2)
}

func TestMarkCohortAttendance_InvalidStatusRejectedBeforeWrites(t *testing.T) {
	svc, env := newRecordEnv(t)

	saved, err := svc.MarkCohortAttendance(context.Background(), teacherSession(), "DBMS", map[string]models.AttendanceStatus{
		"CS-101": models.StatusPresent,
		"CS-102": "Late",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, saved)
	assert.Empty(t, env.attendance.entries)
}

func TestDeleteAttendance(t *testing.T) {
	svc, env := newRecordEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkAttendance(ctx, teacherSession(), "CS-101", "DBMS", models.StatusPresent))

	entries, err := env.attendance.ListByRoll(ctx, "CS-101")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, svc.DeleteAttendance(ctx, teacherSession(), entries[0].ID))
	assert.ErrorIs(t, svc.DeleteAttendance(ctx, teacherSession(), entries[0].ID), apperrors.ErrAttendanceNotFound)
}

func TestListAttendance_ReadAccess(t *testing.T) {
	svc, _ := newRecordEnv(t)
	ctx := context.Background()

	_, err := svc.ListAttendance(ctx, studentSession("CS-101"), "CS-101")
	assert.NoError(t, err)

	_, err = svc.ListAttendance(ctx, studentSession("CS-102"), "CS-101")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
