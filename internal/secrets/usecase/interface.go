// Package usecase implements business logic orchestration for secret
// management: versioned writes with envelope encryption, conditional version
// updates, and the authorization, read-only and audit gates around them.
package usecase

import (
	"context"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// ProjectRepository defines persistence operations for projects.
// Implementations must support transaction-aware operations via context propagation.
type ProjectRepository interface {
	// Create stores a new project.
	Create(ctx context.Context, project *secretsDomain.Project) error

	// Get retrieves a project by ID. Returns ErrProjectNotFound if absent.
	Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error)
}

// SecretRepository defines persistence operations for secrets.
// Implementations must support transaction-aware operations via context propagation.
type SecretRepository interface {
	// Create stores a new secret. Returns ErrSecretAlreadyExists on a
	// duplicate non-deleted (project, name) pair.
	Create(ctx context.Context, secret *secretsDomain.Secret) error

	// GetByProjectAndName retrieves the non-deleted secret with the given
	// name. Returns ErrSecretNotFound if absent or deleted.
	GetByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*secretsDomain.Secret, error)

	// GetAnyByProjectAndName retrieves the most recent secret regardless of
	// state. Returns ErrSecretNotFound if no row exists at all.
	GetAnyByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*secretsDomain.Secret, error)

	// UpdateCurrentVersion conditionally advances the current version and
	// records who advanced it. Returns ErrVersionConflict when the stored
	// value no longer equals observedVersion.
	UpdateCurrentVersion(
		ctx context.Context,
		secretID uuid.UUID,
		observedVersion, newVersion int64,
		updatedBy string,
	) error

	// MarkDeleted soft-deletes a secret, returning the number of rows that
	// actually transitioned.
	MarkDeleted(ctx context.Context, secretID uuid.UUID) (int64, error)

	// List retrieves non-deleted secrets in creation order with pagination.
	List(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*secretsDomain.Secret, error)
}

// SecretVersionRepository defines persistence operations for secret versions.
// Implementations must support transaction-aware operations via context propagation.
type SecretVersionRepository interface {
	// Create stores a new immutable version row. Returns ErrVersionConflict
	// on a duplicate (secret, data version) pair.
	Create(ctx context.Context, version *secretsDomain.SecretVersion) error

	// Get retrieves a specific version. Returns ErrVersionNotFound if absent.
	Get(ctx context.Context, secretID uuid.UUID, dataVersion int64) (*secretsDomain.SecretVersion, error)

	// DeleteBySecret removes all version rows of a secret.
	DeleteBySecret(ctx context.Context, secretID uuid.UUID) error
}

// CreateSecretInput contains the parameters for creating a secret.
type CreateSecretInput struct {
	ProjectID    uuid.UUID
	Name         string
	Provider     string
	ProviderMeta map[string]string
	PublicPart   string
	PrivatePart  []byte
}

// SecretValue is the decrypted payload of one secret version.
type SecretValue struct {
	PublicPart  string
	PrivatePart []byte
	DataVersion int64
}

// SecretUseCase defines the operation surface for versioned secret storage.
type SecretUseCase interface {
	// Create stores a new secret at version 1, encrypting the private part
	// under the default key. Returns ErrSecretAlreadyExists when a non-deleted
	// secret with the same name exists in the project.
	Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, error)

	// AddVersion appends a new payload version and advances the current
	// version with compare-and-swap semantics. Returns the new data version,
	// or ErrVersionConflict when a concurrent writer won the race (the caller
	// must re-read and retry).
	AddVersion(ctx context.Context, projectID uuid.UUID, name, publicPart string, privatePart []byte) (int64, error)

	// GetValue retrieves and decrypts one version of a secret. A nil version
	// selects the current one.
	GetValue(ctx context.Context, projectID uuid.UUID, name string, version *int64) (*SecretValue, error)

	// GetMetadata retrieves a secret without touching its payload.
	GetMetadata(ctx context.Context, projectID uuid.UUID, name string) (*secretsDomain.Secret, error)

	// Delete soft-deletes the secret and cascade-removes its version rows as
	// one unit. Idempotent: deleting an already deleted secret succeeds.
	Delete(ctx context.Context, projectID uuid.UUID, name string) error

	// List retrieves secret summaries for a project in creation order.
	List(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*secretsDomain.Secret, error)
}

// ProjectUseCase defines administrative project operations.
type ProjectUseCase interface {
	// Create stores a new project.
	Create(ctx context.Context, name string, labels map[string]string) (*secretsDomain.Project, error)

	// Get retrieves a project by ID.
	Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error)
}
