package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/dberrors"
	"github.com/selim/srms/internal/pkg/logger"
)

// StudentRepository handles the 'students' table
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add creates a new student record
func (r *StudentRepository) Add(ctx context.Context, student *models.Student) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO students (roll_no, name, email, branch, year, gender)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		student.RollNo, student.Name, student.Email, student.Branch, student.Year, student.Gender)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_pkey") {
			logger.Warn().Str("rollNo", student.RollNo).Msg("Attempted to add student with duplicate roll number")
			return apperrors.ErrDuplicateRoll
		}
		logger.Error().Err(err).Str("rollNo", student.RollNo).Msg("Error executing add student query")
		return fmt.Errorf("%w: error adding student: %v", apperrors.ErrStorage, err)
	}

	logger.Info().Str("rollNo", student.RollNo).Msg("Student added")
	return nil
}

// upsert inserts the profile or refreshes its mutable fields when the roll
// number already exists. Used only by student registration; the cached CGPA
// is never touched here.
func (r *StudentRepository) upsert(ctx context.Context, q Querier, student *models.Student) error {
	_, err := q.Exec(ctx, `
		INSERT INTO students (roll_no, name, email, branch, year, gender)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (roll_no) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, branch = EXCLUDED.branch,
		    year = EXCLUDED.year, gender = EXCLUDED.gender`,
		student.RollNo, student.Name, student.Email, student.Branch, student.Year, student.Gender)

	if err != nil {
		logger.Error().Err(err).Str("rollNo", student.RollNo).Msg("Error executing upsert student query")
		return fmt.Errorf("%w: error saving student: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// Update applies a partial update of mutable profile fields. The roll number
// itself is immutable once created.
func (r *StudentRepository) Update(ctx context.Context, rollNo string, fields models.StudentUpdate) error {
	builder := r.sb.Update("students").Where(squirrel.Eq{"roll_no": rollNo})

	changed := false
	if fields.Name != nil {
		builder = builder.Set("name", *fields.Name)
		changed = true
	}
	if fields.Email != nil {
		builder = builder.Set("email", *fields.Email)
		changed = true
	}
	if fields.Branch != nil {
		builder = builder.Set("branch", *fields.Branch)
		changed = true
	}
	if fields.Year != nil {
		builder = builder.Set("year", *fields.Year)
		changed = true
	}
	if fields.Gender != nil {
		builder = builder.Set("gender", *fields.Gender)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error executing update student query")
		return fmt.Errorf("%w: error updating student: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// remove deletes the student row within the cascade transaction
func (r *StudentRepository) remove(ctx context.Context, q Querier, rollNo string) error {
	tag, err := q.Exec(ctx, `DELETE FROM students WHERE roll_no = $1`, rollNo)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error deleting student")
		return fmt.Errorf("%w: error deleting student: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("rollNo", rollNo).Msg("Student deleted")
	return nil
}

// GetByRollNo retrieves a single student
func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT roll_no, name, email, branch, year, gender, cgpa
		FROM students
		WHERE roll_no = $1`,
		rollNo).Scan(
		&student.RollNo, &student.Name, &student.Email, &student.Branch,
		&student.Year, &student.Gender, &student.CGPA)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error scanning student row")
		return nil, fmt.Errorf("%w: error retrieving student: %v", apperrors.ErrStorage, err)
	}

	return student, nil
}

// Exists checks if a roll number is present in the directory
func (r *StudentRepository) Exists(ctx context.Context, rollNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE roll_no = $1)`,
		rollNo).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("%w: error checking roll number: %v", apperrors.ErrStorage, err)
	}

	return exists, nil
}

// Find returns students matching the filter, roll number ascending. The text
// query is a case-insensitive substring match over roll_no, name and email;
// branch and year are exact matches. An empty filter returns everything.
// Re-invoking Find restarts the scan from the current table state.
func (r *StudentRepository) Find(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	builder := r.sb.Select("roll_no", "name", "email", "branch", "year", "gender", "cgpa").
		From("students").
		OrderBy("roll_no ASC")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"roll_no": pattern},
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if filter.Branch != "" {
		builder = builder.Where(squirrel.Eq{"branch": filter.Branch})
	}
	if filter.Year != 0 {
		builder = builder.Where(squirrel.Eq{"year": filter.Year})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find students SQL")
		return nil, fmt.Errorf("failed to build find students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find students query")
		return nil, fmt.Errorf("%w: error finding students: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.RollNo, &s.Name, &s.Email, &s.Branch, &s.Year, &s.Gender, &s.CGPA); err != nil {
			return nil, fmt.Errorf("%w: error scanning student row: %v", apperrors.ErrStorage, err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating students: %v", apperrors.ErrStorage, err)
	}

	return students, nil
}

// SetCGPA writes the cached derived CGPA. The aggregation service is the
// only caller; nothing else mutates this column.
func (r *StudentRepository) SetCGPA(ctx context.Context, rollNo string, value float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE students SET cgpa = $1 WHERE roll_no = $2`, value, rollNo)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error writing CGPA")
		return fmt.Errorf("%w: error writing CGPA: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
