package seed

import (
	"context"
	"fmt"

	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/app/repositories"
	"github.com/selim/srms/internal/pkg/auth"
	"github.com/selim/srms/internal/pkg/logger"
)

const (
	defaultAdminLogin    = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminIdentity = "ADMIN"
	defaultAdminEmail    = "admin@example.com"
)

// CreateDefaultData seeds the bootstrap teacher account so a fresh
// installation has at least one credential that can register others.
// The seed is idempotent: an existing admin login is left untouched.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories) error {
	exists, err := repos.Accounts.LoginIDExists(ctx, defaultAdminLogin)
	if err != nil {
		return fmt.Errorf("failed to check for default admin account: %w", err)
	}
	if exists {
		logger.Debug().Msg("Default admin account already exists, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	account := &models.Account{
		LoginID:      defaultAdminLogin,
		IdentityID:   defaultAdminIdentity,
		PasswordHash: hash,
		Role:         models.RoleTeacher,
		Email:        defaultAdminEmail,
	}

	if err := repos.Accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("failed to create default admin account: %w", err)
	}

	logger.Info().Str("loginID", defaultAdminLogin).Msg("Default admin account created")
	return nil
}
