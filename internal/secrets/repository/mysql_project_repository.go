package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// mysqlDuplicateEntry is the MySQL error number for unique constraint violations.
const mysqlDuplicateEntry = 1062

// MySQLProjectRepository implements Project persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLProjectRepository struct {
	db *sql.DB
}

// Create inserts a new project.
func (m *MySQLProjectRepository) Create(ctx context.Context, project *secretsDomain.Project) error {
	querier := database.GetTx(ctx, m.db)

	var labelsJSON []byte
	var err error
	if project.Labels != nil {
		labelsJSON, err = json.Marshal(project.Labels)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal project labels")
		}
	}

	id, err := project.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal project id")
	}

	query := `INSERT INTO projects (id, name, labels, created_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, project.Name, labelsJSON, project.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if apperrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.Wrap(apperrors.ErrConflict, "project already exists")
		}
		return database.WrapError(err, "failed to create project")
	}
	return nil
}

// Get retrieves a project by ID. Returns ErrProjectNotFound if absent.
func (m *MySQLProjectRepository) Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := projectID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project id")
	}

	query := `SELECT id, name, labels, created_at FROM projects WHERE id = ?`

	var project secretsDomain.Project
	var idBinary, labelsJSON []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBinary,
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

	if err := project.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal project id")
	}

	if labelsJSON != nil {
		if err := json.Unmarshal(labelsJSON, &project.Labels); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal project labels")
		}
	}

	return &project, nil
}

// NewMySQLProjectRepository creates a new MySQL Project repository.
func NewMySQLProjectRepository(db *sql.DB) *MySQLProjectRepository {
	return &MySQLProjectRepository{db: db}
}
