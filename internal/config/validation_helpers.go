package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	b16errors "github.com/alexisbeaulieu97/base16-builder/pkg/errors"
)

// convertValidationError normalizes validator errors into builder validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := ve.Field()
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return b16errors.NewValidationError(field, msg, err)
	}

	return b16errors.NewValidationError("options", err.Error(), err)
}

// FirstInvalidField returns the document name of the first field that failed
// validation, or an empty string when err is not a validator error.
func FirstInvalidField(err error) string {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		return ves[0].Field()
	}
	return ""
}
