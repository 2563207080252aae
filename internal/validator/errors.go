package validator

import (
	"errors"

	apperrors "github.com/SAP-F-2025/readiness-assessment/internal/errors"
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	return apperrors.ToValidationErrors(err)
}

var (
	ErrSnapshotMalformed = errors.New("quick quiz snapshot is not valid JSON")
	ErrSnapshotSchema    = errors.New("quick quiz snapshot does not match schema")
)
