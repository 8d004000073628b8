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

func newStudentEnv(t *testing.T) (*StudentService, *testEnv) {
	t.Helper()
	env := newTestEnv()
	return NewStudentService(env.students, env.identity, zerolog.Nop()), env
}

func seedStudents(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	for _, s := range []models.Student{
		{RollNo: "CS-101", Name: "Alice", Email: "alice@example.com", Branch: "CS", Year: 2, Gender: "Female"},
		{RollNo: "CS-102", Name: "Bob", Email: "bob@example.com", Branch: "CS", Year: 3, Gender: "Male"},
		{RollNo: "EE-201", Name: "Carol", Email: "carol@example.com", Branch: "EE", Year: 2, Gender: "Female"},
	} {
		s := s
		require.NoError(t, env.students.Add(ctx, &s))
	}
}

func TestStudentList(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)
	ctx := context.Background()

	all, err := svc.List(ctx, teacherSession(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "CS-101", all[0].RollNo)
	assert.Equal(t, "EE-201", all[2].RollNo)

	cs, err := svc.List(ctx, teacherSession(), models.StudentFilter{Branch: "CS"})
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	secondYear, err := svc.List(ctx, teacherSession(), models.StudentFilter{Year: 2})
	require.NoError(t, err)
	assert.Len(t, secondYear, 2)
}

func TestStudentList_StudentForbidden(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)

	_, err := svc.List(context.Background(), studentSession("CS-101"), models.StudentFilter{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestStudentGet(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)
	ctx := context.Background()

	// Teachers read anyone, students only themselves.
	got, err := svc.Get(ctx, teacherSession(), "CS-102")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	own, err := svc.Get(ctx, studentSession("CS-101"), "CS-101")
	require.NoError(t, err)
	assert.Equal(t, "Alice", own.Name)

	_, err = svc.Get(ctx, studentSession("CS-101"), "CS-102")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Get(ctx, teacherSession(), "XX-999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentAdd(t *testing.T) {
	svc, env := newStudentEnv(t)
	ctx := context.Background()

	input := AddStudentInput{
		RollNo: "CS-101",
		Name:   "Alice",
		Branch: "CS",
		Year:   2,
		Gender: "Female",
	}
	require.NoError(t, svc.Add(ctx, teacherSession(), input))

	student, err := env.students.GetByRollNo(ctx, "CS-101")
	require.NoError(t, err)
	assert.Equal(t, "Alice", student.Name)

	err = svc.Add(ctx, teacherSession(), input)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRoll)
}

func TestStudentAdd_Validation(t *testing.T) {
	svc, _ := newStudentEnv(t)

	err := svc.Add(context.Background(), teacherSession(), AddStudentInput{
		RollNo: "CS-101",
		Name:   "Alice",
		Branch: "CS",
		Year:   7,
		Gender: "Female",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStudentAdd_StudentForbidden(t *testing.T) {
	svc, _ := newStudentEnv(t)

	err := svc.Add(context.Background(), studentSession("CS-101"), AddStudentInput{
		RollNo: "CS-200",
		Name:   "Mallory",
		Branch: "CS",
		Year:   1,
		Gender: "Other",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestStudentUpdate(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)
	ctx := context.Background()

	name := "Alice Smith"
	year := 3
	err := svc.Update(ctx, teacherSession(), "CS-101", UpdateStudentInput{Name: &name, Year: &year})
	require.NoError(t, err)

	student, err := env.students.GetByRollNo(ctx, "CS-101")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", student.Name)
	assert.Equal(t, 3, student.Year)
	// untouched fields stay
	assert.Equal(t, "CS", student.Branch)

	err = svc.Update(ctx, teacherSession(), "XX-999", UpdateStudentInput{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentDelete(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)
	ctx := context.Background()

	require.NoError(t, env.accounts.Create(ctx, &models.Account{
		LoginID: "alice01", IdentityID: "CS-101", PasswordHash: "x", Role: models.RoleStudent,
	}))

	require.NoError(t, svc.Delete(ctx, teacherSession(), "CS-101"))

	_, err := env.students.GetByRollNo(ctx, "CS-101")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = env.accounts.GetByLoginID(ctx, "alice01")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestStudentDelete_NotFound(t *testing.T) {
	svc, _ := newStudentEnv(t)

	err := svc.Delete(context.Background(), teacherSession(), "XX-999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentDelete_StudentForbidden(t *testing.T) {
	svc, env := newStudentEnv(t)
	seedStudents(t, env)

	err := svc.Delete(context.Background(), studentSession("CS-101"), "CS-101")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
