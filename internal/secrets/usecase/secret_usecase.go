package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	cryptoService "github.com/allisson/secretstore/internal/crypto/service"
	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// secretUseCase implements SecretUseCase. Writes that touch both the secret
// row and a version row run inside a transaction; concurrent version bumps
// are resolved by the repository's conditional update, never by an in-process
// lock (multiple processes may run against the same store).
type secretUseCase struct {
	txManager    database.TxManager
	projectRepo  ProjectRepository
	secretRepo   SecretRepository
	versionRepo  SecretVersionRepository
	engine       cryptoService.EncryptionEngine
	defaultKeyID string
}

// Create stores a new secret at version 1 with its private part encrypted
// under the default key. The secret row and the version row commit as one
// unit or not at all.
func (s *secretUseCase) Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, error) {
	if input.Name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name is required")
	}
	if err := secretsDomain.ValidateProviderMeta(input.Provider, input.ProviderMeta); err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.Get(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	ciphertext, err := s.engine.Encrypt(input.PrivatePart, s.defaultKeyID)
	if err != nil {
		return nil, err
	}

	principal, _ := authDomain.GetPrincipal(ctx)
	secret := secretsDomain.NewSecret(input.ProjectID, input.Name, input.Provider, input.ProviderMeta, principal.Name)
	version := secretsDomain.NewSecretVersion(secret.ID, 1, input.PublicPart, ciphertext, s.defaultKeyID)

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.secretRepo.Create(txCtx, secret); err != nil {
			return err
		}
		return s.versionRepo.Create(txCtx, version)
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// AddVersion appends the next payload version. The new version number is
// computed from the observed current version and applied with a conditional
// update: if a concurrent writer advanced the secret meanwhile, the whole
// transaction rolls back with ErrVersionConflict and no version row survives.
func (s *secretUseCase) AddVersion(
	ctx context.Context,
	projectID uuid.UUID,
	name, publicPart string,
	privatePart []byte,
) (int64, error) {
	secret, err := s.secretRepo.GetByProjectAndName(ctx, projectID, name)
	if err != nil {
		return 0, err
	}

	ciphertext, err := s.engine.Encrypt(privatePart, s.defaultKeyID)
	if err != nil {
		return 0, err
	}

	principal, _ := authDomain.GetPrincipal(ctx)
	observed := secret.CurrentVersion
	newVersion := observed + 1
	version := secretsDomain.NewSecretVersion(secret.ID, newVersion, publicPart, ciphertext, s.defaultKeyID)

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.secretRepo.UpdateCurrentVersion(txCtx, secret.ID, observed, newVersion, principal.Name); err != nil {
			return err
		}
		return s.versionRepo.Create(txCtx, version)
	})
	if err != nil {
		return 0, err
	}

	return newVersion, nil
}

// GetValue retrieves one version of a secret and decrypts its private part
// using the key recorded on that version.
func (s *secretUseCase) GetValue(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
	version *int64,
) (*SecretValue, error) {
	secret, err := s.secretRepo.GetByProjectAndName(ctx, projectID, name)
	if err != nil {
		return nil, err
	}

	dataVersion := secret.CurrentVersion
	if version != nil {
		dataVersion = *version
	}

	secretVersion, err := s.versionRepo.Get(ctx, secret.ID, dataVersion)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.engine.Decrypt(secretVersion.EncryptedPrivatePart, secretVersion.KMSKeyID)
	if err != nil {
		return nil, err
	}

	return &SecretValue{
		PublicPart:  secretVersion.PublicPart,
		PrivatePart: plaintext,
		DataVersion: secretVersion.DataVersion,
	}, nil
}

// GetMetadata retrieves a secret without its payload.
func (s *secretUseCase) GetMetadata(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	return s.secretRepo.GetByProjectAndName(ctx, projectID, name)
}

// Delete soft-deletes the secret and removes all its version rows in one
// transaction. Repeating a delete succeeds without touching anything.
func (s *secretUseCase) Delete(ctx context.Context, projectID uuid.UUID, name string) error {
	secret, err := s.secretRepo.GetAnyByProjectAndName(ctx, projectID, name)
	if err != nil {
		return err
	}
	if secret.State == secretsDomain.StateDeleted {
		return nil
	}

	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.secretRepo.MarkDeleted(txCtx, secret.ID); err != nil {
			return err
		}
		return s.versionRepo.DeleteBySecret(txCtx, secret.ID)
	})
}

// List retrieves secret summaries for a project in creation order.
func (s *secretUseCase) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	return s.secretRepo.List(ctx, projectID, offset, limit)
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	projectRepo ProjectRepository,
	secretRepo SecretRepository,
	versionRepo SecretVersionRepository,
	engine cryptoService.EncryptionEngine,
	defaultKeyID string,
) SecretUseCase {
	return &secretUseCase{
		txManager:    txManager,
		projectRepo:  projectRepo,
		secretRepo:   secretRepo,
		versionRepo:  versionRepo,
		engine:       engine,
		defaultKeyID: defaultKeyID,
	}
}
