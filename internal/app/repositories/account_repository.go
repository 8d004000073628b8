package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
	"github.com/selim/srms/internal/pkg/dberrors"
	"github.com/selim/srms/internal/pkg/logger"
)

// AccountRepository is the only writer of the 'users' table. Passwords are
// stored as bcrypt hashes produced by the auth service; the repository never
// sees plaintext.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.create(ctx, r.db, account)
}

func (r *AccountRepository) create(ctx context.Context, q Querier, account *models.Account) error {
	_, err := q.Exec(ctx, `
		INSERT INTO users (login_id, user_id, password, role, email)
		VALUES ($1, $2, $3, $4, $5)`,
		account.LoginID, account.IdentityID, account.PasswordHash, account.Role, account.Email)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("loginID", account.LoginID).Msg("Attempted to create account with duplicate login or identity")
			return apperrors.ErrDuplicateLogin
		}
		logger.Error().Err(err).Str("loginID", account.LoginID).Msg("Error executing create account query")
		return fmt.Errorf("%w: error creating account: %v", apperrors.ErrStorage, err)
	}

	logger.Info().Str("loginID", account.LoginID).Str("identityID", account.IdentityID).Msg("Account created")
	return nil
}

// GetByLoginID retrieves an account by login ID. The lookup is a
// case-sensitive exact match.
func (r *AccountRepository) GetByLoginID(ctx context.Context, loginID string) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT login_id, user_id, password, role, email
		FROM users
		WHERE login_id = $1`,
		loginID).Scan(
		&account.LoginID, &account.IdentityID, &account.PasswordHash, &account.Role, &account.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Msg("Error scanning account row")
		return nil, fmt.Errorf("%w: error retrieving account: %v", apperrors.ErrStorage, err)
	}

	return account, nil
}

// LoginIDExists checks if a login ID is already taken
func (r *AccountRepository) LoginIDExists(ctx context.Context, loginID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE login_id = $1)`,
		loginID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("%w: error checking login ID: %v", apperrors.ErrStorage, err)
	}

	return exists, nil
}

// DeleteByIdentityID removes the account bound to an identity, if any
func (r *AccountRepository) DeleteByIdentityID(ctx context.Context, identityID string) error {
	return r.deleteByIdentityID(ctx, r.db, identityID)
}

func (r *AccountRepository) deleteByIdentityID(ctx context.Context, q Querier, identityID string) error {
	tag, err := q.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, identityID)
	if err != nil {
		logger.Error().Err(err).Str("identityID", identityID).Msg("Error deleting account")
		return fmt.Errorf("%w: error deleting account: %v", apperrors.ErrStorage, err)
	}

	if tag.RowsAffected() > 0 {
		logger.Info().Str("identityID", identityID).Msg("Account deleted")
	}
	return nil
}
