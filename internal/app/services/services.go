package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/app/repositories"
	"github.com/selim/srms/internal/pkg/auth"
)

// Storage interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

// AccountStore is the credential store surface
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByLoginID(ctx context.Context, loginID string) (*models.Account, error)
	LoginIDExists(ctx context.Context, loginID string) (bool, error)
}

// IdentityStore carries the two atomic multi-row operations binding a
// student to their account.
type IdentityStore interface {
	RegisterStudent(ctx context.Context, student *models.Student, account *models.Account) error
	RemoveStudentCascade(ctx context.Context, rollNo string) error
}

// StudentStore is the student directory surface
type StudentStore interface {
	Add(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, rollNo string, fields models.StudentUpdate) error
	GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error)
	Exists(ctx context.Context, rollNo string) (bool, error)
	Find(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	SetCGPA(ctx context.Context, rollNo string, value float64) error
}

// MarksStore is the marks side of the record ledger
type MarksStore interface {
	Add(ctx context.Context, entry *models.MarksEntry) (int64, error)
	Delete(ctx context.Context, id int64) error
	ListByRoll(ctx context.Context, rollNo string) ([]models.MarksEntry, error)
}

// AttendanceStore is the attendance side of the record ledger
type AttendanceStore interface {
	Upsert(ctx context.Context, rollNo, subject string, status models.AttendanceStatus) error
	Delete(ctx context.Context, id int64) error
	ListByRoll(ctx context.Context, rollNo string) ([]models.AttendanceEntry, error)
	StatusesForSubject(ctx context.Context, subject string, rollNos []string) (map[string]models.AttendanceStatus, error)
}

// Services bundles the application services
type Services struct {
	Auth        *AuthService
	Students    *StudentService
	Records     *RecordService
	Aggregation *AggregationService
}

// NewServices wires all services over the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Accounts, repos, jwtService, logger),
		Students:    NewStudentService(repos.Students, repos, logger),
		Records:     NewRecordService(repos.Students, repos.Marks, repos.Attendance, logger),
		Aggregation: NewAggregationService(repos.Students, repos.Marks, repos.Attendance, logger),
	}
}
