package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// MySQLSecretVersionRepository implements SecretVersion persistence for
// MySQL. Uses BINARY(16) for UUID storage. Version rows are immutable: they
// are only inserted and only removed as part of the owning secret's cascade
// deletion.
type MySQLSecretVersionRepository struct {
	db *sql.DB
}

// Create inserts a new secret version. Returns ErrVersionConflict when the
// (secret_id, data_version) pair already exists.
func (m *MySQLSecretVersionRepository) Create(ctx context.Context, version *secretsDomain.SecretVersion) error {
	querier := database.GetTx(ctx, m.db)

	secretID, err := version.SecretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	query := `INSERT INTO secret_versions (secret_id, data_version, public_part, encrypted_private_part, kms_key_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		secretID,
		version.DataVersion,
		version.PublicPart,
		version.EncryptedPrivatePart,
		version.KMSKeyID,
		version.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if apperrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return secretsDomain.ErrVersionConflict
		}
		return database.WrapError(err, "failed to create secret version")
	}
	return nil
}

// Get retrieves a specific version. Returns ErrVersionNotFound if absent.
func (m *MySQLSecretVersionRepository) Get(
	ctx context.Context,
	secretID uuid.UUID,
	dataVersion int64,
) (*secretsDomain.SecretVersion, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := secretID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal secret id")
	}

	query := `SELECT secret_id, data_version, public_part, encrypted_private_part, kms_key_id, created_at
			  FROM secret_versions
			  WHERE secret_id = ? AND data_version = ?
			  LIMIT 1`

	var version secretsDomain.SecretVersion
	var secretIDBinary []byte
	err = querier.QueryRowContext(ctx, query, id, dataVersion).Scan(
		&secretIDBinary,
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

	if err := version.SecretID.UnmarshalBinary(secretIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}

	return &version, nil
}

// DeleteBySecret removes all version rows of a secret. Only called inside the
// owning secret's deletion transaction.
func (m *MySQLSecretVersionRepository) DeleteBySecret(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := secretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	query := `DELETE FROM secret_versions WHERE secret_id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return database.WrapError(err, "failed to delete secret versions")
	}
	return nil
}

// NewMySQLSecretVersionRepository creates a new MySQL SecretVersion repository.
func NewMySQLSecretVersionRepository(db *sql.DB) *MySQLSecretVersionRepository {
	return &MySQLSecretVersionRepository{db: db}
}
