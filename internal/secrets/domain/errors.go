package domain

import (
	"github.com/allisson/secretstore/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrProjectNotFound indicates the referenced project does not exist.
	ErrProjectNotFound = errors.Wrap(errors.ErrNotFound, "project not found")

	// ErrSecretNotFound indicates the secret does not exist or was deleted.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrVersionNotFound indicates the requested data version does not exist.
	ErrVersionNotFound = errors.Wrap(errors.ErrNotFound, "secret version not found")

	// ErrSecretAlreadyExists indicates a non-deleted secret with the same name
	// already exists in the project.
	ErrSecretAlreadyExists = errors.Wrap(errors.ErrConflict, "secret already exists")

	// ErrVersionConflict indicates a concurrent writer advanced the current
	// version past the value this caller observed. The caller must re-read
	// and retry.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "secret version conflict")
)
