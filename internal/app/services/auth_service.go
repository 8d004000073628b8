package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/auth"
	"github.com/selim/srms/internal/pkg/validation"
)

// RegisterTeacherInput carries a teacher registration request
type RegisterTeacherInput struct {
	LoginID  string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8"`
	Email    string `validate:"omitempty,email"`
}

// RegisterStudentInput carries a student registration request. The account's
// identity is the roll number; the profile is created (or refreshed) in the
// same transaction as the account.
type RegisterStudentInput struct {
	LoginID  string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8"`
	Email    string `validate:"omitempty,email"`
	RollNo   string `validate:"required,max=20"`
	Name     string `validate:"required,min=2,max=100"`
	Branch   string `validate:"required,max=20"`
	Year     int    `validate:"required,min=1,max=4"`
	Gender   string `validate:"required,oneof=Male Female Other"`
}

// AuthService resolves credentials into role-scoped sessions
type AuthService struct {
	accounts   AccountStore
	identity   IdentityStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, identity IdentityStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		identity:   identity,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterTeacher creates a teacher account. The identity token is derived
// from the login name, uppercased, and has no student binding.
func (s *AuthService) RegisterTeacher(ctx context.Context, input RegisterTeacherInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	exists, err := s.accounts.LoginIDExists(ctx, input.LoginID)
	if err != nil {
		return fmt.Errorf("error checking login ID: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateLogin
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		LoginID:      input.LoginID,
		IdentityID:   strings.ToUpper(input.LoginID),
		PasswordHash: hash,
		Role:         models.RoleTeacher,
		Email:        input.Email,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return err
	}

	s.logger.Info().Str("loginID", input.LoginID).Msg("Teacher registered")
	return nil
}

// RegisterStudent creates a student account bound to its roll number,
// writing the profile and the account atomically. The profile write is an
// upsert: a teacher may already have added the student to the directory.
func (s *AuthService) RegisterStudent(ctx context.Context, input RegisterStudentInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	exists, err := s.accounts.LoginIDExists(ctx, input.LoginID)
	if err != nil {
		return fmt.Errorf("error checking login ID: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateLogin
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		RollNo: input.RollNo,
		Name:   input.Name,
		Email:  input.Email,
		Branch: input.Branch,
		Year:   input.Year,
		Gender: input.Gender,
	}
	account := &models.Account{
		LoginID:      input.LoginID,
		IdentityID:   input.RollNo,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Email:        input.Email,
	}

	if err := s.identity.RegisterStudent(ctx, student, account); err != nil {
		return err
	}

	s.logger.Info().Str("loginID", input.LoginID).Str("rollNo", input.RollNo).Msg("Student registered")
	return nil
}

// Login verifies credentials and resolves the role-scoped session. Unknown
// login IDs and wrong passwords fail identically so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (models.Session, error) {
	account, err := s.accounts.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return models.Session{}, apperrors.ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}

	rollNo := ""
	if account.Role == models.RoleStudent {
		rollNo = account.IdentityID
	}

	token, err := s.jwtService.GenerateSessionToken(account.LoginID, string(account.Role), rollNo)
	if err != nil {
		return models.Session{}, fmt.Errorf("session token generation error: %w", err)
	}

	s.logger.Info().Str("loginID", account.LoginID).Str("role", string(account.Role)).Msg("Login succeeded")
	return models.Session{
		Token:   token,
		LoginID: account.LoginID,
		Role:    account.Role,
		RollNo:  rollNo,
	}, nil
}

// Logout discards a session. Sessions are stateless tokens, so this is
// idempotent and always succeeds; the caller just drops the value.
func (s *AuthService) Logout(ctx context.Context, session models.Session) {
	if session.LoginID != "" {
		s.logger.Info().Str("loginID", session.LoginID).Msg("Logout")
	}
}

// Resolve validates a session token and reconstructs the session
func (s *AuthService) Resolve(ctx context.Context, token string) (models.Session, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return models.Session{}, apperrors.ErrTokenExpired
		}
		return models.Session{}, apperrors.ErrTokenInvalid
	}

	return models.Session{
		Token:   token,
		LoginID: claims.LoginID,
		Role:    models.Role(claims.Role),
		RollNo:  claims.RollNo,
	}, nil
}
