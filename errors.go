package srms

import "github.com/selim/srms/internal/pkg/apperrors"

// Sentinel errors returned by Core operations. Match with errors.Is; wrapped
// variants carry detail but always unwrap to one of these.
var (
	ErrNotFound           = apperrors.ErrNotFound
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrTokenExpired       = apperrors.ErrTokenExpired
	ErrTokenInvalid       = apperrors.ErrTokenInvalid
	ErrForbidden          = apperrors.ErrForbidden
	ErrValidation         = apperrors.ErrValidation
	ErrDuplicateLogin     = apperrors.ErrDuplicateLogin
	ErrDuplicateRoll      = apperrors.ErrDuplicateRoll
	ErrStudentNotFound    = apperrors.ErrStudentNotFound
	ErrMarksNotFound      = apperrors.ErrMarksNotFound
	ErrAttendanceNotFound = apperrors.ErrAttendanceNotFound
	ErrStorage            = apperrors.ErrStorage
)
