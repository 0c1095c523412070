package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// MySQLSecretRepository implements Secret persistence for MySQL. Uses
// BINARY(16) for UUID storage. MySQL has no partial indexes, so uniqueness of
// (project_id, name) among non-deleted secrets is enforced with a generated
// column that is NULL for deleted rows.
type MySQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret. Returns ErrSecretAlreadyExists when a
// non-deleted secret with the same name exists in the project.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	var metaJSON []byte
	var err error
	if secret.ProviderMeta != nil {
		metaJSON, err = json.Marshal(secret.ProviderMeta)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal provider metadata")
		}
	}

	id, err := secret.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	projectID, err := secret.ProjectID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal project id")
	}

	query := `INSERT INTO secrets (id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		projectID,
		secret.Name,
		secret.Provider,
		metaJSON,
		string(secret.State),
		secret.CurrentVersion,
		secret.CreatedBy,
		secret.UpdatedBy,
		secret.CreatedAt,
		secret.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if apperrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return secretsDomain.ErrSecretAlreadyExists
		}
		return database.WrapError(err, "failed to create secret")
	}
	return nil
}

// GetByProjectAndName retrieves the non-deleted secret with the given name in
// the project. Returns ErrSecretNotFound if absent or deleted.
func (m *MySQLSecretRepository) GetByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	projectIDBinary, err := projectID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project id")
	}

	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = ? AND name = ? AND state <> ?
			  LIMIT 1`

	return m.scanSecret(querier.QueryRowContext(ctx, query, projectIDBinary, name, string(secretsDomain.StateDeleted)))
}

// GetAnyByProjectAndName retrieves the most recent secret with the given name
// in the project regardless of state. Used by deletion to distinguish an
// idempotent repeat from a missing secret. Returns ErrSecretNotFound if no
// row exists at all.
func (m *MySQLSecretRepository) GetAnyByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	projectIDBinary, err := projectID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project id")
	}

	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = ? AND name = ?
			  ORDER BY id DESC
			  LIMIT 1`

	return m.scanSecret(querier.QueryRowContext(ctx, query, projectIDBinary, name))
}

// UpdateCurrentVersion conditionally advances the current version: the update
// applies only if the stored value still equals observedVersion and the
// secret is active. Returns ErrVersionConflict when a concurrent writer won
// the race (or the secret was deleted meanwhile).
func (m *MySQLSecretRepository) UpdateCurrentVersion(
	ctx context.Context,
	secretID uuid.UUID,
	observedVersion, newVersion int64,
	updatedBy string,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := secretID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal secret id")
	}

	query := `UPDATE secrets
			  SET current_version = ?, updated_by = ?, updated_at = ?
			  WHERE id = ? AND current_version = ? AND state = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		newVersion,
		updatedBy,
		time.Now().UTC(),
		id,
		observedVersion,
		string(secretsDomain.StateActive),
	)
	if err != nil {
		return database.WrapError(err, "failed to update secret current version")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return database.WrapError(err, "failed to read affected rows")
	}
	if affected == 0 {
		return secretsDomain.ErrVersionConflict
	}
	return nil
}

// MarkDeleted soft-deletes a secret. Returns the number of rows transitioned
// so callers can distinguish an idempotent repeat from a real transition.
func (m *MySQLSecretRepository) MarkDeleted(ctx context.Context, secretID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := secretID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal secret id")
	}

	query := `UPDATE secrets
			  SET state = ?, updated_at = ?
			  WHERE id = ? AND state <> ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(secretsDomain.StateDeleted),
		time.Now().UTC(),
		id,
		string(secretsDomain.StateDeleted),
	)
	if err != nil {
		return 0, database.WrapError(err, "failed to mark secret deleted")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, database.WrapError(err, "failed to read affected rows")
	}
	return affected, nil
}

// List retrieves non-deleted secrets for a project in creation order with
// pagination. Returns empty slice if none match.
func (m *MySQLSecretRepository) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	projectIDBinary, err := projectID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project id")
	}

	// UUIDv7 IDs are time ordered, so id ASC is creation order.
	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = ? AND state <> ?
			  ORDER BY id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, projectIDBinary, string(secretsDomain.StateDeleted), limit, offset)
	if err != nil {
		return nil, database.WrapError(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		secret, err := m.scanSecret(rows)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, secret)
	}

	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to iterate secrets")
	}

	return secrets, nil
}

func (m *MySQLSecretRepository) scanSecret(row rowScanner) (*secretsDomain.Secret, error) {
	var secret secretsDomain.Secret
	var idBinary, projectIDBinary, metaJSON []byte
	var state string

	err := row.Scan(
		&idBinary,
		&projectIDBinary,
		&secret.Name,
		&secret.Provider,
		&metaJSON,
		&state,
		&secret.CurrentVersion,
		&secret.CreatedBy,
		&secret.UpdatedBy,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, database.WrapError(err, "failed to scan secret")
	}

	if err := secret.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal secret id")
	}

	if err := secret.ProjectID.UnmarshalBinary(projectIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal project id")
	}

	secret.State = secretsDomain.State(state)

	if metaJSON != nil {
		if err := json.Unmarshal(metaJSON, &secret.ProviderMeta); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal provider metadata")
		}
	}

	return &secret, nil
}

// NewMySQLSecretRepository creates a new MySQL Secret repository.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
