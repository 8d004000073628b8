package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/logger"
)

// MarksRepository handles the 'marks' table. Entries accumulate per
// (roll_no, subject); the ledger never merges them.
type MarksRepository struct {
	db *pgxpool.Pool
}

// NewMarksRepository creates a new MarksRepository
func NewMarksRepository(db *pgxpool.Pool) *MarksRepository {
	return &MarksRepository{db: db}
}

// Add inserts a marks entry and returns the assigned id
func (r *MarksRepository) Add(ctx context.Context, entry *models.MarksEntry) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO marks (roll_no, subject, marks, max_marks, exam_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING mark_id`,
		entry.RollNo, entry.Subject, entry.Marks, entry.MaxMarks, entry.ExamType).Scan(&id)

	if err != nil {
		logger.Error().Err(err).Str("rollNo", entry.RollNo).Str("subject", entry.Subject).Msg("Error executing add marks query")
		return 0, fmt.Errorf("%w: error adding marks: %v", apperrors.ErrStorage, err)
	}

	logger.Info().Int64("markID", id).Str("rollNo", entry.RollNo).Str("subject", entry.Subject).Msg("Marks entry added")
	return id, nil
}

// Delete removes one marks entry by id
func (r *MarksRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM marks WHERE mark_id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("markID", id).Msg("Error deleting marks entry")
		return fmt.Errorf("%w: error deleting marks: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrMarksNotFound
	}

	return nil
}

// ListByRoll returns all marks entries for a student in insertion order
func (r *MarksRepository) ListByRoll(ctx context.Context, rollNo string) ([]models.MarksEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT mark_id, roll_no, subject, marks, max_marks, exam_type
		FROM marks
		WHERE roll_no = $1
		ORDER BY mark_id ASC`,
		rollNo)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error executing list marks query")
		return nil, fmt.Errorf("%w: error listing marks: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var entries []models.MarksEntry
	for rows.Next() {
		var e models.MarksEntry
		if err := rows.Scan(&e.ID, &e.RollNo, &e.Subject, &e.Marks, &e.MaxMarks, &e.ExamType); err != nil {
			return nil, fmt.Errorf("%w: error scanning marks row: %v", apperrors.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating marks: %v", apperrors.ErrStorage, err)
	}

	return entries, nil
}
