// Package domain defines the audit trail models: immutable entries describing
// attempted operations, with sensitive payload fields masked before the entry
// is constructed.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the operation an audit entry describes.
type Action string

// Audited actions. ActionReadAudit is an authorization-only action: reading
// the trail is itself gated but produces no entry.
const (
	ActionCreateSecret      Action = "CREATE_SECRET"
	ActionReadSecret        Action = "READ_SECRET"
	ActionUpgradeSecretData Action = "UPGRADE_SECRET_DATA"
	ActionDeleteSecret      Action = "DELETE_SECRET"
	ActionReadAudit         Action = "READ_AUDIT"
)

// Status records whether the audited operation succeeded.
type Status string

// Entry statuses.
const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// MaskedValue replaces every sensitive payload field before an entry is
// built. The true value never reaches the entry or the logger queue.
const MaskedValue = "MASKED"

// Field is one payload attribute of an audit entry. Fields carrying secret
// material must be marked Sensitive at the call site; masking is applied when
// the entry is constructed, not later.
type Field struct {
	Key       string
	Value     any
	Sensitive bool
}

// Entry records one attempted action. Immutable once created; the backing
// store is append-only.
type Entry struct {
	ID         uuid.UUID
	RequestID  string
	Action     Action
	Status     Status
	Principal  string
	Actor      string
	ProjectID  uuid.UUID
	SecretName string
	Payload    map[string]any
	CreatedAt  time.Time
}

// NewEntry builds an audit entry with a UUIDv7 identifier and a masked
// payload snapshot. Sensitive fields are replaced by MaskedValue here so the
// unmasked value never crosses into the async pipeline.
func NewEntry(
	requestID string,
	action Action,
	status Status,
	principal, actor string,
	projectID uuid.UUID,
	secretName string,
	fields ...Field,
) *Entry {
	var payload map[string]any
	if len(fields) > 0 {
		payload = make(map[string]any, len(fields))
		for _, field := range fields {
			if field.Sensitive {
				payload[field.Key] = MaskedValue
				continue
			}
			payload[field.Key] = field.Value
		}
	}

	return &Entry{
		ID:         uuid.Must(uuid.NewV7()),
		RequestID:  requestID,
		Action:     action,
		Status:     status,
		Principal:  principal,
		Actor:      actor,
		ProjectID:  projectID,
		SecretName: secretName,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
}
