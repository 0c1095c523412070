package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	"github.com/allisson/secretstore/internal/database"
	apperrors "github.com/allisson/secretstore/internal/errors"
)

// MySQLAuditEntryRepository implements audit entry persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
// The audit_entries table is append-only: no update or delete is ever issued.
type MySQLAuditEntryRepository struct {
	db *sql.DB
}

// Create inserts a new audit entry using BINARY(16) for UUIDs. Uses
// transaction support via database.GetTx(). Handles nil payload as database NULL.
func (m *MySQLAuditEntryRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	var payloadJSON []byte
	var err error

	if entry.Payload != nil {
		payloadJSON, err = json.Marshal(entry.Payload)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit entry payload")
		}
	}

	query := `INSERT INTO audit_entries (id, request_id, action, status, principal, actor, project_id, secret_name, payload, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit entry id")
	}

	projectID, err := entry.ProjectID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit entry project_id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		entry.RequestID,
		string(entry.Action),
		string(entry.Status),
		entry.Principal,
		entry.Actor,
		projectID,
		entry.SecretName,
		payloadJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return database.WrapError(err, "failed to create audit entry")
	}

	return nil
}

// List retrieves audit entries for a project ordered by created_at descending
// (newest first) with pagination and optional inclusive time filters (nil
// means no filter). Returns empty slice if no entries match. UUIDs are stored
// as BINARY(16) and must be unmarshaled.
func (m *MySQLAuditEntryRepository) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	projectIDBinary, err := projectID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal project_id")
	}

	// Build dynamic WHERE clause based on provided filters
	conditions := []string{"project_id = ?"}
	args := []any{projectIDBinary}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}

	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, request_id, action, status, principal, actor, project_id, secret_name, payload, created_at
			  FROM audit_entries
			  WHERE ` + strings.Join(conditions, " AND ")
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"

	args = append(args, limit, offset)

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
		var idBinary, projectBinary []byte
		var payloadJSON []byte
		var action, status string

		err := rows.Scan(
			&idBinary,
			&entry.RequestID,
			&action,
			&status,
			&entry.Principal,
			&entry.Actor,
			&projectBinary,
			&entry.SecretName,
			&payloadJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, database.WrapError(err, "failed to scan audit entry")
		}

		if err := entry.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit entry id")
		}

		if err := entry.ProjectID.UnmarshalBinary(projectBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit entry project_id")
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

// NewMySQLAuditEntryRepository creates a new MySQL audit entry repository.
func NewMySQLAuditEntryRepository(db *sql.DB) *MySQLAuditEntryRepository {
	return &MySQLAuditEntryRepository{db: db}
}
