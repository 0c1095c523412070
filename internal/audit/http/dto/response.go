// Package dto provides data transfer objects for audit HTTP responses.
package dto

import (
	"time"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
)

// AuditEntryResponse represents one audit entry in API responses. Sensitive
// payload fields were already masked when the entry was recorded.
type AuditEntryResponse struct {
	ID         string         `json:"id"`
	RequestID  string         `json:"request_id,omitempty"`
	Action     string         `json:"action"`
	Status     string         `json:"status"`
	Principal  string         `json:"principal"`
	Actor      string         `json:"actor,omitempty"`
	ProjectID  string         `json:"project_id"`
	SecretName string         `json:"secret_name,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MapEntryToResponse converts a domain audit entry to an API response.
func MapEntryToResponse(entry *auditDomain.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID.String(),
		RequestID:  entry.RequestID,
		Action:     string(entry.Action),
		Status:     string(entry.Status),
		Principal:  entry.Principal,
		Actor:      entry.Actor,
		ProjectID:  entry.ProjectID.String(),
		SecretName: entry.SecretName,
		Payload:    entry.Payload,
		CreatedAt:  entry.CreatedAt,
	}
}

// ListAuditEntriesResponse represents a paginated list of audit entries.
type ListAuditEntriesResponse struct {
	Data []AuditEntryResponse `json:"data"`
}

// MapEntriesToListResponse converts a slice of domain audit entries to a list response.
func MapEntriesToListResponse(entries []*auditDomain.Entry) ListAuditEntriesResponse {
	data := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, MapEntryToResponse(entry))
	}

	return ListAuditEntriesResponse{
		Data: data,
	}
}
