package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/logger"
)

// AttendanceRepository handles the 'attendance' table. The table holds at
// most one row per (roll_no, subject); marking again overwrites the status.
// Absence of a row is the distinct "Not Marked" state, synthesized by
// callers and never stored.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert marks attendance for one (student, subject) pair. Idempotent per
// pair: the latest status wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, rollNo, subject string, status models.AttendanceStatus) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO attendance (roll_no, subject, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (roll_no, subject) DO UPDATE SET status = EXCLUDED.status`,
		rollNo, subject, status)

	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Str("subject", subject).Msg("Error executing mark attendance query")
		return fmt.Errorf("%w: error marking attendance: %v", apperrors.ErrStorage, err)
	}

	return nil
}

// Delete removes one attendance entry by id
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attendance WHERE attendance_id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error deleting attendance entry")
		return fmt.Errorf("%w: error deleting attendance: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// ListByRoll returns all attendance entries for a student
func (r *AttendanceRepository) ListByRoll(ctx context.Context, rollNo string) ([]models.AttendanceEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT attendance_id, roll_no, subject, status
		FROM attendance
		WHERE roll_no = $1
		ORDER BY subject ASC`,
		rollNo)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("%w: error listing attendance: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		if err := rows.Scan(&e.ID, &e.RollNo, &e.Subject, &e.Status); err != nil {
			return nil, fmt.Errorf("%w: error scanning attendance row: %v", apperrors.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating attendance: %v", apperrors.ErrStorage, err)
	}

	return entries, nil
}

// StatusesForSubject returns the stored status per roll number for one
// subject. Roll numbers with no row are simply absent from the map; the
// caller synthesizes StatusNotMarked for them.
func (r *AttendanceRepository) StatusesForSubject(ctx context.Context, subject string, rollNos []string) (map[string]models.AttendanceStatus, error) {
	statuses := make(map[string]models.AttendanceStatus, len(rollNos))
	if len(rollNos) == 0 {
		return statuses, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT roll_no, status
		FROM attendance
		WHERE subject = $1 AND roll_no = ANY($2)`,
		subject, rollNos)
	if err != nil {
		logger.Error().Err(err).Str("subject", subject).Msg("Error executing subject attendance query")
		return nil, fmt.Errorf("%w: error reading subject attendance: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rollNo string
		var status models.AttendanceStatus
		if err := rows.Scan(&rollNo, &status); err != nil {
			return nil, fmt.Errorf("%w: error scanning attendance row: %v", apperrors.ErrStorage, err)
		}
		statuses[rollNo] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating attendance: %v", apperrors.ErrStorage, err)
	}

	return statuses, nil
}
