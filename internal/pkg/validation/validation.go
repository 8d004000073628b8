package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/selim/srms/internal/pkg/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates an input struct against its `validate` tags and maps
// failures onto apperrors.ErrValidation with a per-field detail map.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.NewValidationError(err.Error())
	}

	details := make(map[string]interface{}, len(ve))
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
		fields = append(fields, fe.Field())
	}

	custom := &apperrors.CustomError{
		Err:     apperrors.ErrValidation,
		Message: "invalid fields: " + strings.Join(fields, ", "),
	}
	return custom.WithDetails(details)
}
