// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
	secretsUseCase "github.com/allisson/secretstore/internal/secrets/usecase"
)

// SecretResponse represents secret metadata in API responses. It never
// carries payload data.
type SecretResponse struct {
	ID             string            `json:"id"`
	ProjectID      string            `json:"project_id"`
	Name           string            `json:"name"`
	Provider       string            `json:"provider"`
	ProviderMeta   map[string]string `json:"provider_meta,omitempty"`
	State          string            `json:"state"`
	CurrentVersion int64             `json:"current_version"`
	CreatedBy      string            `json:"created_by,omitempty"`
	UpdatedBy      string            `json:"updated_by,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// MapSecretToResponse converts a domain secret to an API response.
func MapSecretToResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:             secret.ID.String(),
		ProjectID:      secret.ProjectID.String(),
		Name:           secret.Name,
		Provider:       secret.Provider,
		ProviderMeta:   secret.ProviderMeta,
		State:          string(secret.State),
		CurrentVersion: secret.CurrentVersion,
		CreatedBy:      secret.CreatedBy,
		UpdatedBy:      secret.UpdatedBy,
		CreatedAt:      secret.CreatedAt,
		UpdatedAt:      secret.UpdatedAt,
	}
}

// SecretValueResponse represents one decrypted secret version. The private
// part is base64-encoded by the JSON marshaller. Must be transmitted over
// HTTPS in production.
type SecretValueResponse struct {
	Name        string `json:"name"`
	DataVersion int64  `json:"data_version"`
	PublicPart  string `json:"public_part,omitempty"`
	PrivatePart []byte `json:"private_part"`
}

// MapValueToResponse converts a decrypted secret value to an API response.
func MapValueToResponse(name string, value *secretsUseCase.SecretValue) SecretValueResponse {
	return SecretValueResponse{
		Name:        name,
		DataVersion: value.DataVersion,
		PublicPart:  value.PublicPart,
		PrivatePart: value.PrivatePart,
	}
}

// AddVersionResponse reports the data version assigned to a newly appended
// secret version.
type AddVersionResponse struct {
	DataVersion int64 `json:"data_version"`
}
