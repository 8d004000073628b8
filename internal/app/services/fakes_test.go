package services

import (
	"context"
	"sort"
	"strings"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
)

// In-memory store fakes. They mirror the repository error contracts so the
// services see the same sentinel errors as they would over postgres.

type fakeAccounts struct {
	byLogin map[string]*models.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byLogin: make(map[string]*models.Account)}
}

func (f *fakeAccounts) Create(ctx context.Context, account *models.Account) error {
	if _, ok := f.byLogin[account.LoginID]; ok {
		return apperrors.ErrDuplicateLogin
	}
	for _, a := range f.byLogin {
		if a.IdentityID == account.IdentityID {
			return apperrors.ErrDuplicateLogin
		}
	}
	cp := *account
	f.byLogin[account.LoginID] = &cp
	return nil
}

func (f *fakeAccounts) GetByLoginID(ctx context.Context, loginID string) (*models.Account, error) {
	a, ok := f.byLogin[loginID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) LoginIDExists(ctx context.Context, loginID string) (bool, error) {
	_, ok := f.byLogin[loginID]
	return ok, nil
}

func (f *fakeAccounts) deleteByIdentityID(identityID string) {
	for login, a := range f.byLogin {
		if a.IdentityID == identityID {
			delete(f.byLogin, login)
		}
	}
}

type fakeStudents struct {
	byRoll map[string]*models.Student
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byRoll: make(map[string]*models.Student)}
}

func (f *fakeStudents) Add(ctx context.Context, student *models.Student) error {
	if _, ok := f.byRoll[student.RollNo]; ok {
		return apperrors.ErrDuplicateRoll
	}
	cp := *student
	f.byRoll[student.RollNo] = &cp
	return nil
}

func (f *fakeStudents) upsert(student *models.Student) {
	if existing, ok := f.byRoll[student.RollNo]; ok {
		cgpa := existing.CGPA
		cp := *student
		cp.CGPA = cgpa
		f.byRoll[student.RollNo] = &cp
		return
	}
	cp := *student
	f.byRoll[student.RollNo] = &cp
}

func (f *fakeStudents) Update(ctx context.Context, rollNo string, fields models.StudentUpdate) error {
	s, ok := f.byRoll[rollNo]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if fields.Name != nil {
		s.Name = *fields.Name
	}
	if fields.Email != nil {
		s.Email = *fields.Email
	}
	if fields.Branch != nil {
		s.Branch = *fields.Branch
	}
	if fields.Year != nil {
		s.Year = *fields.Year
	}
	if fields.Gender != nil {
		s.Gender = *fields.Gender
	}
	return nil
}

func (f *fakeStudents) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	s, ok := f.byRoll[rollNo]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudents) Exists(ctx context.Context, rollNo string) (bool, error) {
	_, ok := f.byRoll[rollNo]
	return ok, nil
}

func (f *fakeStudents) Find(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var out []models.Student
	for _, s := range f.byRoll {
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(s.RollNo), q) &&
				!strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(s.Email), q) {
				continue
			}
		}
		if filter.Branch != "" && s.Branch != filter.Branch {
			continue
		}
		if filter.Year != 0 && s.Year != filter.Year {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (f *fakeStudents) SetCGPA(ctx context.Context, rollNo string, value float64) error {
	s, ok := f.byRoll[rollNo]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.CGPA = value
	return nil
}

type fakeMarks struct {
	entries []models.MarksEntry
	nextID  int64
}

func newFakeMarks() *fakeMarks {
	return &fakeMarks{nextID: 1}
}

func (f *fakeMarks) Add(ctx context.Context, entry *models.MarksEntry) (int64, error) {
	cp := *entry
	cp.ID = f.nextID
	f.nextID++
	f.entries = append(f.entries, cp)
	return cp.ID, nil
}

func (f *fakeMarks) Delete(ctx context.Context, id int64) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrMarksNotFound
}

func (f *fakeMarks) ListByRoll(ctx context.Context, rollNo string) ([]models.MarksEntry, error) {
	var out []models.MarksEntry
	for _, e := range f.entries {
		if e.RollNo == rollNo {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	entries []models.AttendanceEntry
	nextID  int64
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{nextID: 1}
}

func (f *fakeAttendance) Upsert(ctx context.Context, rollNo, subject string, status models.AttendanceStatus) error {
	for i, e := range f.entries {
		if e.RollNo == rollNo && e.Subject == subject {
			f.entries[i].Status = status
			return nil
		}
	}
	f.entries = append(f.entries, models.AttendanceEntry{
		ID:      f.nextID,
		RollNo:  rollNo,
		Subject: subject,
		Status:  status,
	})
	f.nextID++
	return nil
}

func (f *fakeAttendance) Delete(ctx context.Context, id int64) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAttendanceNotFound
}

func (f *fakeAttendance) ListByRoll(ctx context.Context, rollNo string) ([]models.AttendanceEntry, error) {
	var out []models.AttendanceEntry
	for _, e := range f.entries {
		if e.RollNo == rollNo {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

func (f *fakeAttendance) StatusesForSubject(ctx context.Context, subject string, rollNos []string) (map[string]models.AttendanceStatus, error) {
	wanted := make(map[string]bool, len(rollNos))
	for _, r := range rollNos {
		wanted[r] = true
	}
	out := make(map[string]models.AttendanceStatus)
	for _, e := range f.entries {
		if e.Subject == subject && wanted[e.RollNo] {
			out[e.RollNo] = e.Status
		}
	}
	return out, nil
}

// fakeIdentity emulates the two transactional operations over the other
// fakes. Account uniqueness is checked before any write so a failed
// registration leaves no partial state, matching the real transaction.
type fakeIdentity struct {
	students   *fakeStudents
	accounts   *fakeAccounts
	marks      *fakeMarks
	attendance *fakeAttendance
}

func (f *fakeIdentity) RegisterStudent(ctx context.Context, student *models.Student, account *models.Account) error {
	if _, ok := f.accounts.byLogin[account.LoginID]; ok {
		return apperrors.ErrDuplicateLogin
	}
	for _, a := range f.accounts.byLogin {
		if a.IdentityID == account.IdentityID {
			return apperrors.ErrDuplicateLogin
		}
	}
	f.students.upsert(student)
	return f.accounts.Create(ctx, account)
}

func (f *fakeIdentity) RemoveStudentCascade(ctx context.Context, rollNo string) error {
	if _, ok := f.students.byRoll[rollNo]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students.byRoll, rollNo)
	f.accounts.deleteByIdentityID(rollNo)
	if f.marks != nil {
		kept := f.marks.entries[:0]
		for _, e := range f.marks.entries {
			if e.RollNo != rollNo {
				kept = append(kept, e)
			}
		}
		f.marks.entries = kept
	}
	if f.attendance != nil {
		kept := f.attendance.entries[:0]
		for _, e := range f.attendance.entries {
			if e.RollNo != rollNo {
				kept = append(kept, e)
			}
		}
		f.attendance.entries = kept
	}
	return nil
}

// testEnv bundles the fakes plus fully wired services for tests.
type testEnv struct {
	accounts   *fakeAccounts
	students   *fakeStudents
	marks      *fakeMarks
	attendance *fakeAttendance
	identity   *fakeIdentity
}

func newTestEnv() *testEnv {
	env := &testEnv{
		accounts:   newFakeAccounts(),
		students:   newFakeStudents(),
		marks:      newFakeMarks(),
		attendance: newFakeAttendance(),
	}
	env.identity = &fakeIdentity{
		students:   env.students,
		accounts:   env.accounts,
		marks:      env.marks,
		attendance: env.attendance,
	}
	return env
}

func teacherSession() models.Session {
	return models.Session{LoginID: "admin", Role: models.RoleTeacher}
}

func studentSession(rollNo string) models.Session {
	return models.Session{LoginID: "stud-" + rollNo, Role: models.RoleStudent, RollNo: rollNo}
}
