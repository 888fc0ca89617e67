package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/pinktech/kounty-api/pkg/errorutil"
)

var validate = validator.New()

// Validate checks struct tags on a request payload and converts failures
// into the boundary validation error.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errorutil.NewInternalError(err)
	}

	details := make(map[string]any, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return errorutil.NewValidationError("Los datos enviados no son válidos.", details)
}
