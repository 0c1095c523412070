// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/secretstore/internal/validation"
)

// CreateSecretRequest contains the parameters for creating a secret. The
// project id is extracted from the URL parameter, not the request body.
// The private part is base64-encoded in transit.
type CreateSecretRequest struct {
	Name         string            `json:"name" binding:"required"`
	Provider     string            `json:"provider"`
	ProviderMeta map[string]string `json:"provider_meta"`
	PublicPart   string            `json:"public_part"`
	PrivatePart  string            `json:"private_part" binding:"required"`
}

// Validate checks if the create secret request is valid. Provider metadata
// semantics are validated by the domain layer.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.SecretName,
		),
		validation.Field(&r.Provider,
			validation.Required,
		),
		validation.Field(&r.PrivatePart,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// AddVersionRequest contains the parameters for appending a new secret
// version. The private part is base64-encoded in transit.
type AddVersionRequest struct {
	PublicPart  string `json:"public_part"`
	PrivatePart string `json:"private_part" binding:"required"`
}

// Validate checks if the add version request is valid.
func (r *AddVersionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrivatePart,
			validation.Required,
			customValidation.Base64,
		),
	)
}
