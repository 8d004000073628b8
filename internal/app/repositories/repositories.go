package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/db"
)

// Querier is the subset of pgx operations repositories need. It is satisfied
// by both *pgxpool.Pool and pgx.Tx, so single-row methods and the
// transactional compound operations share the same SQL.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all storage access
type Repositories struct {
	pool       *pgxpool.Pool
	Accounts   *AccountRepository
	Students   *StudentRepository
	Marks      *MarksRepository
	Attendance *AttendanceRepository
}

// NewRepositories creates all repositories over one connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		pool:       pool,
		Accounts:   NewAccountRepository(pool),
		Students:   NewStudentRepository(pool),
		Marks:      NewMarksRepository(pool),
		Attendance: NewAttendanceRepository(pool),
	}
}

// RegisterStudent writes the student profile and the bound account as one
// transaction: either both rows change or neither does. The profile is an
// upsert because a teacher may have added the student before the student
// created an account; creation order is not fixed.
func (r *Repositories) RegisterStudent(ctx context.Context, student *models.Student, account *models.Account) error {
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.Students.upsert(ctx, tx, student); err != nil {
			return fmt.Errorf("saving student profile: %w", err)
		}
		if err := r.Accounts.create(ctx, tx, account); err != nil {
			return err
		}
		return nil
	})
}

// RemoveStudentCascade deletes the student and the bound account in one
// transaction so no student-role account can outlive its student record.
func (r *Repositories) RemoveStudentCascade(ctx context.Context, rollNo string) error {
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.Students.remove(ctx, tx, rollNo); err != nil {
			return err
		}
		// Not every student has an account yet, so zero rows here is fine.
		return r.Accounts.deleteByIdentityID(ctx, tx, rollNo)
	})
}
