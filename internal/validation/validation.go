// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secretstore/internal/errors"
)

// secretNameRegex restricts secret names to a safe identifier charset.
var secretNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// SecretName validates that a string is a well-formed secret name: it must
// start with a letter or digit and contain only letters, digits, dots,
// underscores and hyphens.
var SecretName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_secret_name_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if !secretNameRegex.MatchString(s) {
		return validation.NewError(
			"validation_secret_name",
			"must contain only letters, digits, dots, underscores and hyphens",
		)
	}
	return nil
})
