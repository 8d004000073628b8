// Package auth holds the per-operation authorization rules. Roles are a
// tagged variant: Teacher sessions act on any roll number, Student sessions
// carry their bound roll number and may only read their own records.
package auth

import (
	"github.com/selim/srms/internal/app/models"
	"github.com/selim/srms/internal/pkg/apperrors"
)

// RequireSession rejects unresolved or malformed sessions.
func RequireSession(session models.Session) error {
	if session.LoginID == "" || !session.Role.Valid() {
		return apperrors.ErrForbidden
	}
	if session.Role == models.RoleStudent && session.RollNo == "" {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireTeacher gates every mutating operation and all cohort-wide reads.
func RequireTeacher(session models.Session) error {
	if err := RequireSession(session); err != nil {
		return err
	}
	if session.Role != models.RoleTeacher {
		return apperrors.NewForbiddenError("teacher role required")
	}
	return nil
}

// RequireReadAccess allows teachers to read any student's records and
// students to read only their own.
func RequireReadAccess(session models.Session, rollNo string) error {
	if err := RequireSession(session); err != nil {
		return err
	}
	if session.Role == models.RoleTeacher {
		return nil
	}
	if session.RollNo != rollNo {
		return apperrors.NewForbiddenError("students may only read their own records")
	}
	return nil
}
