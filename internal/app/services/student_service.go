package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/selim/srms/internal/app/auth"
	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/validation"
)

// AddStudentInput carries a teacher-initiated student add
type AddStudentInput struct {
	RollNo string `validate:"required,max=20"`
	Name   string `validate:"required,min=2,max=100"`
	Email  string `validate:"omitempty,email"`
	Branch string `validate:"required,max=20"`
	Year   int    `validate:"required,min=1,max=4"`
	Gender string `validate:"required,oneof=Male Female Other"`
}

// UpdateStudentInput carries a partial profile edit; nil fields are unchanged
type UpdateStudentInput struct {
	Name   *string `validate:"omitempty,min=2,max=100"`
	Email  *string `validate:"omitempty,email"`
	Branch *string `validate:"omitempty,max=20"`
	Year   *int    `validate:"omitempty,min=1,max=4"`
	Gender *string `validate:"omitempty,oneof=Male Female Other"`
}

// StudentService exposes the role-gated student directory
type StudentService struct {
	students StudentStore
	identity IdentityStore
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, identity IdentityStore, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		identity: identity,
		logger:   logger,
	}
}

// List returns directory rows matching the filter, roll number ascending.
// Cohort-wide directory reads are a teacher surface.
func (s *StudentService) List(ctx context.Context, session models.Session, filter models.StudentFilter) ([]models.Student, error) {
	if err := appauth.RequireTeacher(session); err != nil {
		return nil, err
	}
	return s.students.Find(ctx, filter)
}

// Get returns one student's profile. Students can only fetch their own.
func (s *StudentService) Get(ctx context.Context, session models.Session, rollNo string) (*models.Student, error) {
	if err := appauth.RequireReadAccess(session, rollNo); err != nil {
		return nil, err
	}
	return s.students.GetByRollNo(ctx, rollNo)
}

// Add creates a student record without an account. The student can later
// register an account against the same roll number.
func (s *StudentService) Add(ctx context.Context, session models.Session, input AddStudentInput) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	student := &models.Student{
		RollNo: input.RollNo,
		Name:   input.Name,
		Email:  input.Email,
		Branch: input.Branch,
		Year:   input.Year,
		Gender: input.Gender,
	}
	return s.students.Add(ctx, student)
}

// Update edits the mutable profile fields of an existing student
func (s *StudentService) Update(ctx context.Context, session models.Session, rollNo string, input UpdateStudentInput) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	fields := models.StudentUpdate{
		Name:   input.Name,
		Email:  input.Email,
		Branch: input.Branch,
		Year:   input.Year,
		Gender: input.Gender,
	}
	return s.students.Update(ctx, rollNo, fields)
}

// Delete removes a student and, in the same transaction, the account bound
// to that roll number.
func (s *StudentService) Delete(ctx context.Context, session models.Session, rollNo string) error {
	if err := appauth.RequireTeacher(session); err != nil {
		return err
	}

	if err := s.identity.RemoveStudentCascade(ctx, rollNo); err != nil {
		return err
	}

	s.logger.Info().Str("rollNo", rollNo).Msg("Student and bound account removed")
	return nil
}
