// Package usecase implements asynchronous audit recording.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
)

// EntryRepository defines persistence operations for audit entries.
// Implementations must support transaction-aware operations via context propagation.
type EntryRepository interface {
	// Create appends a new audit entry. The store is append-only.
	Create(ctx context.Context, entry *auditDomain.Entry) error

	// List retrieves entries for a project, newest first, with optional
	// inclusive time filters (nil means no filter).
	List(
		ctx context.Context,
		projectID uuid.UUID,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)
}

// AuditLogger records attempted operations off the critical path. Submission
// never blocks the caller and the caller's outcome never depends on whether
// the audit write later succeeds.
type AuditLogger interface {
	// Log submits an entry for asynchronous recording. Safe for concurrent
	// use. Entries submitted by the same goroutine are written in submission
	// order; ordering across goroutines is best-effort. When the queue is
	// saturated or the logger is shutting down the entry is dropped with a
	// logged warning.
	Log(entry *auditDomain.Entry)

	// List retrieves recorded entries for a project.
	List(
		ctx context.Context,
		projectID uuid.UUID,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.Entry, error)

	// Shutdown stops accepting new entries, drains in-flight writes bounded
	// by the context deadline, and releases the workers. Must be invoked
	// exactly once during process teardown.
	Shutdown(ctx context.Context) error
}
