package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL.
// Uniqueness of (project_id, name) among non-deleted secrets is enforced by a
// partial unique index.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret. Returns ErrSecretAlreadyExists when a
// non-deleted secret with the same name exists in the project.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	var metaJSON []byte
	var err error
	if secret.ProviderMeta != nil {
		metaJSON, err = json.Marshal(secret.ProviderMeta)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal provider metadata")
		}
	}

	query := `INSERT INTO secrets (id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.ProjectID,
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
		var pqErr *pq.Error
		if apperrors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return secretsDomain.ErrSecretAlreadyExists
		}
		return database.WrapError(err, "failed to create secret")
	}
	return nil
}

// GetByProjectAndName retrieves the non-deleted secret with the given name in
// the project. Returns ErrSecretNotFound if absent or deleted.
func (p *PostgreSQLSecretRepository) GetByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = $1 AND name = $2 AND state <> $3
			  LIMIT 1`

	return p.scanSecret(querier.QueryRowContext(ctx, query, projectID, name, string(secretsDomain.StateDeleted)))
}

// GetAnyByProjectAndName retrieves the most recent secret with the given name
// in the project regardless of state. Used by deletion to distinguish an
// idempotent repeat from a missing secret. Returns ErrSecretNotFound if no
// row exists at all.
func (p *PostgreSQLSecretRepository) GetAnyByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = $1 AND name = $2
			  ORDER BY id DESC
			  LIMIT 1`

	return p.scanSecret(querier.QueryRowContext(ctx, query, projectID, name))
}

// UpdateCurrentVersion conditionally advances the current version: the update
// applies only if the stored value still equals observedVersion and the
// secret is active. Returns ErrVersionConflict when a concurrent writer won
// the race (or the secret was deleted meanwhile).
func (p *PostgreSQLSecretRepository) UpdateCurrentVersion(
	ctx context.Context,
	secretID uuid.UUID,
	observedVersion, newVersion int64,
	updatedBy string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
			  SET current_version = $1, updated_by = $2, updated_at = $3
			  WHERE id = $4 AND current_version = $5 AND state = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		newVersion,
		updatedBy,
		time.Now().UTC(),
		secretID,
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
func (p *PostgreSQLSecretRepository) MarkDeleted(ctx context.Context, secretID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
			  SET state = $1, updated_at = $2
			  WHERE id = $3 AND state <> $1`

	result, err := querier.ExecContext(ctx, query, string(secretsDomain.StateDeleted), time.Now().UTC(), secretID)
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
func (p *PostgreSQLSecretRepository) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	// UUIDv7 IDs are time ordered, so id ASC is creation order.
	query := `SELECT id, project_id, name, provider, provider_meta, state, current_version, created_by, updated_by, created_at, updated_at
			  FROM secrets
			  WHERE project_id = $1 AND state <> $2
			  ORDER BY id ASC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, projectID, string(secretsDomain.StateDeleted), limit, offset)
	if err != nil {
		return nil, database.WrapError(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		secret, err := p.scanSecret(rows)
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

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (p *PostgreSQLSecretRepository) scanSecret(row rowScanner) (*secretsDomain.Secret, error) {
	var secret secretsDomain.Secret
	var metaJSON []byte
	var state string

	err := row.Scan(
		&secret.ID,
		&secret.ProjectID,
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

	secret.State = secretsDomain.State(state)

	if metaJSON != nil {
		if err := json.Unmarshal(metaJSON, &secret.ProviderMeta); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal provider metadata")
		}
	}

	return &secret, nil
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}
