// Package repository implements audit entry persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
)

// PostgreSQLAuditEntryRepository implements audit entry persistence for PostgreSQL.
// The audit_entries table is append-only: no update or delete is ever issued.
type PostgreSQLAuditEntryRepository struct {
	db *sql.DB
}

// Create inserts a new audit entry. Uses transaction support via
// database.GetTx(). Handles nil payload as database NULL.
func (p *PostgreSQLAuditEntryRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	var payloadJSON []byte
	var err error

	if entry.Payload != nil {
		payloadJSON, err = json.Marshal(entry.Payload)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry payload")
		}
	}

	query := `INSERT INTO audit_entries (id, request_id, action, status, principal, actor, project_id, secret_name, payload, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.RequestID,
		string(entry.Action),
		string(entry.Status),
		entry.Principal,
		entry.Actor,
		entry.ProjectID,
		entry.SecretName,
		payloadJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return database.WrapError(err, "failed to create audit entry")
	}

	return nil
}

// List retrieves audit entries for a project ordered by ID descending (newest
// first) with pagination and optional inclusive time filters (nil means no
// filter). Returns empty slice if no entries match.
func (p *PostgreSQLAuditEntryRepository) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	// Build dynamic WHERE clause based on provided filters
	conditions := []string{"project_id = $1"}
	args := []any{projectID}

	if createdAtFrom != nil {
		args = append(args, *createdAtFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if createdAtTo != nil {
		args = append(args, *createdAtTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT id, request_id, action, status, principal, actor, project_id, secret_name, payload, created_at
			  FROM audit_entries
			  WHERE ` + strings.Join(conditions, " AND ")

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		var entry auditDomain.Entry
		var payloadJSON []byte
		var action, status string

		err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&action,
			&status,
			&entry.Principal,
			&entry.Actor,
			&entry.ProjectID,
			&entry.SecretName,
			&payloadJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, database.WrapError(err, "failed to scan audit entry")
		}

		entry.Action = auditDomain.Action(action)
		entry.Status = auditDomain.Status(status)

		if payloadJSON != nil {
			if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit entry payload")
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to iterate audit entries")
	}

	return entries, nil
}

// NewPostgreSQLAuditEntryRepository creates a new PostgreSQL audit entry repository.
func NewPostgreSQLAuditEntryRepository(db *sql.DB) *PostgreSQLAuditEntryRepository {
	return &PostgreSQLAuditEntryRepository{db: db}
}
