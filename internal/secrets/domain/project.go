// Package domain defines the core domain models for secret management.
// Secrets are versioned with envelope encryption: each payload update creates
// a new immutable version row and advances the secret's current version via a
// conditional update.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project owns a namespace of unique secret names. Projects are created
// administratively and never deleted.
type Project struct {
	ID        uuid.UUID
	Name      string
	Labels    map[string]string
	CreatedAt time.Time
}

// NewProject creates a project with a UUIDv7 identifier.
func NewProject(name string, labels map[string]string) *Project {
	return &Project{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Labels:    labels,
		CreatedAt: time.Now().UTC(),
	}
}
