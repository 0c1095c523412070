package domain

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/errors"
)

// State describes the lifecycle of a secret.
type State string

// Secret states. Deletion is a soft transition: the secret row is retained
// for audit while its version rows are cascade-removed.
const (
	StateActive   State = "ACTIVE"
	StateDisabled State = "DISABLED"
	StateDeleted  State = "DELETED"
)

// ProviderSelf marks secrets whose payload is supplied by the caller, with no
// external rotation or revocation endpoint.
const ProviderSelf = "SELF"

// Provider metadata keys required for externally managed secrets.
const (
	MetaRevokeURL = "revokeUrl"
	MetaRotateURL = "rotateUrl"
)

// Secret is one secret identity within a project. The (ProjectID, Name) pair
// is unique among non-deleted secrets. CurrentVersion always points at the
// latest version row.
type Secret struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Name           string
	Provider       string
	ProviderMeta   map[string]string
	State          State
	CurrentVersion int64
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewSecret creates an active secret at version 1 with a UUIDv7 identifier.
// createdBy is the principal performing the creation.
func NewSecret(projectID uuid.UUID, name, provider string, providerMeta map[string]string, createdBy string) *Secret {
	now := time.Now().UTC()
	return &Secret{
		ID:             uuid.Must(uuid.NewV7()),
		ProjectID:      projectID,
		Name:           name,
		Provider:       provider,
		ProviderMeta:   providerMeta,
		State:          StateActive,
		CurrentVersion: 1,
		CreatedBy:      createdBy,
		UpdatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ValidateProviderMeta checks provider-specific metadata. SELF requires none;
// any other provider requires revokeUrl and rotateUrl entries holding valid
// http or https URLs.
func ValidateProviderMeta(provider string, providerMeta map[string]string) error {
	if provider == "" {
		return errors.Wrap(errors.ErrInvalidInput, "provider is required")
	}
	if provider == ProviderSelf {
		return nil
	}

	for _, key := range []string{MetaRevokeURL, MetaRotateURL} {
		raw, ok := providerMeta[key]
		if !ok || raw == "" {
			return errors.Wrap(errors.ErrInvalidInput, "provider metadata is missing "+key)
		}
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return errors.Wrap(errors.ErrInvalidInput, "provider metadata "+key+" must be a valid http or https URL")
		}
	}
	return nil
}
