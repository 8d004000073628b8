// Package srms is the embeddable core of the student records manager. It
// wires configuration, storage and the role-gated services into a single
// Core value; callers authenticate once, then pass the returned Session to
// every operation.
package srms

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/selim/srms/internal/app/migrations"
	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/app/repositories"
	"github.com/selim/srms/internal/app/services"
	"github.com/selim/srms/internal/config"
	"github.com/selim/srms/internal/db"
	"github.com/selim/srms/internal/pkg/auth"
	"github.com/selim/srms/internal/pkg/logger"
	"github.com/selim/srms/internal/seed"
)

// Domain types re-exported for callers.
type (
	Session          = models.Session
	Role             = models.Role
	Student          = models.Student
	StudentFilter    = models.StudentFilter
	MarksEntry       = models.MarksEntry
	AttendanceEntry  = models.AttendanceEntry
	AttendanceStatus = models.AttendanceStatus
	AttendanceReport = models.AttendanceReport

	RegisterTeacherInput = services.RegisterTeacherInput
	RegisterStudentInput = services.RegisterStudentInput
	AddStudentInput      = services.AddStudentInput
	UpdateStudentInput   = services.UpdateStudentInput
	MarksInput           = services.MarksInput
)

const (
	RoleTeacher = models.RoleTeacher
	RoleStudent = models.RoleStudent

	StatusPresent   = models.StatusPresent
	StatusAbsent    = models.StatusAbsent
	StatusNotMarked = models.StatusNotMarked
)

// Options configures Core construction
type Options struct {
	// ConfigPath is the YAML config file; defaults to configs/config.yaml.
	// Environment variables override file values either way.
	ConfigPath string
	// MigrationsDir holds the SQL migration files; defaults to migrations.
	// Set SkipMigrations to manage the schema out of band.
	MigrationsDir  string
	SkipMigrations bool
	// SkipSeed disables creation of the default admin account
	SkipSeed bool
}

// Core is the assembled application: one database pool, the service layer
// on top, and the session signer. It is safe for concurrent use.
type Core struct {
	cfg      *config.Config
	database *db.PostgresDB
	services *services.Services
}

// New loads configuration, connects to the database, applies migrations and
// seed data, and wires the services. Close the returned Core when done.
func New(ctx context.Context, opts Options) (*Core, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join("configs", "config.yaml")
	}
	if opts.MigrationsDir == "" {
		opts.MigrationsDir = "migrations"
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(pingCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !opts.SkipMigrations {
		if _, err := os.Stat(opts.MigrationsDir); os.IsNotExist(err) {
			database.Close()
			return nil, fmt.Errorf("migrations directory not found at %s", opts.MigrationsDir)
		}
		migrator := migrations.NewMigrator(database.Pool)
		if err := migrator.MigrateFromDirectory(ctx, opts.MigrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
	}

	repos := repositories.NewRepositories(database.Pool)

	if !opts.SkipSeed {
		if err := seed.CreateDefaultData(ctx, repos); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to seed default data: %w", err)
		}
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		SessionExp:  cfg.SessionExpiration(),
		TokenIssuer: cfg.Session.Issuer,
	})

	svcs := services.NewServices(repos, jwtService, log.Logger)

	return &Core{
		cfg:      cfg,
		database: database,
		services: svcs,
	}, nil
}

// Close releases the database pool
func (c *Core) Close() {
	c.database.Close()
}

// Login verifies credentials and opens a session
func (c *Core) Login(ctx context.Context, loginID, password string) (Session, error) {
	return c.services.Auth.Login(ctx, loginID, password)
}

// Logout discards a session
func (c *Core) Logout(ctx context.Context, session Session) {
	c.services.Auth.Logout(ctx, session)
}

// Resolve reconstructs a session from its token
func (c *Core) Resolve(ctx context.Context, token string) (Session, error) {
	return c.services.Auth.Resolve(ctx, token)
}

// RegisterTeacher creates a teacher account
func (c *Core) RegisterTeacher(ctx context.Context, input RegisterTeacherInput) error {
	return c.services.Auth.RegisterTeacher(ctx, input)
}

// RegisterStudent creates a student account and its directory profile
func (c *Core) RegisterStudent(ctx context.Context, input RegisterStudentInput) error {
	return c.services.Auth.RegisterStudent(ctx, input)
}

// ListStudents returns directory rows matching the filter
func (c *Core) ListStudents(ctx context.Context, session Session, filter StudentFilter) ([]Student, error) {
	return c.services.Students.List(ctx, session, filter)
}

// GetStudent returns one student's profile
func (c *Core) GetStudent(ctx context.Context, session Session, rollNo string) (*Student, error) {
	return c.services.Students.Get(ctx, session, rollNo)
}

// AddStudent creates a directory entry without an account
func (c *Core) AddStudent(ctx context.Context, session Session, input AddStudentInput) error {
	return c.services.Students.Add(ctx, session, input)
}

// UpdateStudent edits a student's mutable profile fields
func (c *Core) UpdateStudent(ctx context.Context, session Session, rollNo string, input UpdateStudentInput) error {
	return c.services.Students.Update(ctx, session, rollNo, input)
}

// DeleteStudent removes a student together with their account and records
func (c *Core) DeleteStudent(ctx context.Context, session Session, rollNo string) error {
	return c.services.Students.Delete(ctx, session, rollNo)
}

// AddMarks appends a marks entry and returns its id
func (c *Core) AddMarks(ctx context.Context, session Session, input MarksInput) (int64, error) {
	return c.services.Records.AddMarks(ctx, session, input)
}

// DeleteMarks removes one marks entry
func (c *Core) DeleteMarks(ctx context.Context, session Session, id int64) error {
	return c.services.Records.DeleteMarks(ctx, session, id)
}

// ListMarks returns a student's marks entries in insertion order
func (c *Core) ListMarks(ctx context.Context, session Session, rollNo string) ([]MarksEntry, error) {
	return c.services.Records.ListMarks(ctx, session, rollNo)
}

// MarkAttendance sets the status for one (student, subject) pair
func (c *Core) MarkAttendance(ctx context.Context, session Session, rollNo, subject string, status AttendanceStatus) error {
	return c.services.Records.MarkAttendance(ctx, session, rollNo, subject, status)
}

// MarkCohortAttendance saves one subject's attendance for many students
func (c *Core) MarkCohortAttendance(ctx context.Context, session Session, subject string, statuses map[string]AttendanceStatus) (int, error) {
	return c.services.Records.MarkCohortAttendance(ctx, session, subject, statuses)
}

// DeleteAttendance removes one attendance entry
func (c *Core) DeleteAttendance(ctx context.Context, session Session, id int64) error {
	return c.services.Records.DeleteAttendance(ctx, session, id)
}

// ListAttendance returns a student's stored attendance entries
func (c *Core) ListAttendance(ctx context.Context, session Session, rollNo string) ([]AttendanceEntry, error) {
	return c.services.Records.ListAttendance(ctx, session, rollNo)
}

// ComputeCGPA recomputes and stores a student's CGPA
func (c *Core) ComputeCGPA(ctx context.Context, session Session, rollNo string) (float64, error) {
	return c.services.Aggregation.ComputeCGPA(ctx, session, rollNo)
}

// AttendanceReport builds the per-subject attendance report for a cohort
func (c *Core) AttendanceReport(ctx context.Context, session Session, subject string, cohort StudentFilter) (*AttendanceReport, error) {
	return c.services.Aggregation.AttendanceReport(ctx, session, subject, cohort)
}
