package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// PostgreSQLSecretVersionRepository implements SecretVersion persistence for
// PostgreSQL. Version rows are immutable: they are only inserted and only
// removed as part of the owning secret's cascade deletion.
type PostgreSQLSecretVersionRepository struct {
	db *sql.DB
}

// Create inserts a new secret version. Returns ErrVersionConflict when the
// (secret_id, data_version) pair already exists.
func (p *PostgreSQLSecretVersionRepository) Create(ctx context.Context, version *secretsDomain.SecretVersion) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secret_versions (secret_id, data_version, public_part, encrypted_private_part, kms_key_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		version.SecretID,
		version.DataVersion,
		version.PublicPart,
		version.EncryptedPrivatePart,
		version.KMSKeyID,
		version.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if apperrors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return secretsDomain.ErrVersionConflict
		}
		return database.WrapError(err, "failed to create secret version")
	}
	return nil
}

// Get retrieves a specific version. Returns ErrVersionNotFound if absent.
func (p *PostgreSQLSecretVersionRepository) Get(
	ctx context.Context,
	secretID uuid.UUID,
	dataVersion int64,
) (*secretsDomain.SecretVersion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT secret_id, data_version, public_part, encrypted_private_part, kms_key_id, created_at
			  FROM secret_versions
			  WHERE secret_id = $1 AND data_version = $2
			  LIMIT 1`

	var version secretsDomain.SecretVersion
	err := querier.QueryRowContext(ctx, query, secretID, dataVersion).Scan(
		&version.SecretID,
		&version.DataVersion,
		&version.PublicPart,
		&version.EncryptedPrivatePart,
		&version.KMSKeyID,
		&version.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, secretsDomain.ErrVersionNotFound
		}
		return nil, database.WrapError(err, "failed to get secret version")
	}

	return &version, nil
}

// DeleteBySecret removes all version rows of a secret. Only called inside the
// owning secret's deletion transaction.
func (p *PostgreSQLSecretVersionRepository) DeleteBySecret(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secret_versions WHERE secret_id = $1`

	if _, err := querier.ExecContext(ctx, query, secretID); err != nil {
		return database.WrapError(err, "failed to delete secret versions")
	}
	return nil
}

// NewPostgreSQLSecretVersionRepository creates a new PostgreSQL SecretVersion repository.
func NewPostgreSQLSecretVersionRepository(db *sql.DB) *PostgreSQLSecretVersionRepository {
	return &PostgreSQLSecretVersionRepository{db: db}
}
