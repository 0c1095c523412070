// Package repository implements data persistence for secret management.
// Repositories support both PostgreSQL and MySQL with conditional version
// updates and soft deletion.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PostgreSQLProjectRepository implements Project persistence for PostgreSQL.
type PostgreSQLProjectRepository struct {
	db *sql.DB
}

// Create inserts a new project.
func (p *PostgreSQLProjectRepository) Create(ctx context.Context, project *secretsDomain.Project) error {
	querier := database.GetTx(ctx, p.db)

	var labelsJSON []byte
	var err error
	if project.Labels != nil {
		labelsJSON, err = json.Marshal(project.Labels)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal project labels")
		}
	}

	query := `INSERT INTO projects (id, name, labels, created_at) VALUES ($1, $2, $3, $4)`

	_, err = querier.ExecContext(ctx, query, project.ID, project.Name, labelsJSON, project.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if apperrors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return apperrors.Wrap(apperrors.ErrConflict, "project already exists")
		}
		return database.WrapError(err, "failed to create project")
	}
	return nil
}

// Get retrieves a project by ID. Returns ErrProjectNotFound if absent.
func (p *PostgreSQLProjectRepository) Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, labels, created_at FROM projects WHERE id = $1`

	var project secretsDomain.Project
	var labelsJSON []byte
	err := querier.QueryRowContext(ctx, query, projectID).Scan(
		&project.ID,
		&project.Name,
		&labelsJSON,
		&project.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, secretsDomain.ErrProjectNotFound
		}
		return nil, database.WrapError(err, "failed to get project")
	}

	if labelsJSON != nil {
		if err := json.Unmarshal(labelsJSON, &project.Labels); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal project labels")
		}
	}

	return &project, nil
}

// NewPostgreSQLProjectRepository creates a new PostgreSQL Project repository.
func NewPostgreSQLProjectRepository(db *sql.DB) *PostgreSQLProjectRepository {
	return &PostgreSQLProjectRepository{db: db}
}
