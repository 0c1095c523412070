// Package http provides HTTP handlers for secret management operations.
// Secrets are encrypted at rest using envelope encryption and can be versioned.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/httputil"
	"github.com/allisson/secretstore/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/secretstore/internal/secrets/usecase"
	customValidation "github.com/allisson/secretstore/internal/validation"
)

// SecretHandler handles HTTP requests for secret management operations. All
// authorization, read-only gating and audit recording happens in the guarded
// use case; the handler only translates between HTTP and the use case.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// projectIDParam extracts and parses the project id URL parameter.
func projectIDParam(c *gin.Context) (uuid.UUID, error) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid project id: must be a uuid")
	}
	return projectID, nil
}

// CreateHandler creates a new secret at version 1.
// POST /v1/projects/:project_id/secrets
// Returns 201 Created with secret metadata (the payload is never echoed back).
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	privatePart, err := base64.StdEncoding.DecodeString(req.PrivatePart)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 private part: %w", err), h.logger)
		return
	}

	secret, err := h.secretUseCase.Create(c.Request.Context(), &secretsUseCase.CreateSecretInput{
		ProjectID:    projectID,
		Name:         req.Name,
		Provider:     req.Provider,
		ProviderMeta: req.ProviderMeta,
		PublicPart:   req.PublicPart,
		PrivatePart:  privatePart,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSecretToResponse(secret))
}

// AddVersionHandler appends a new payload version to a secret.
// POST /v1/projects/:project_id/secrets/:name/versions
// Returns 201 Created with the assigned data version. A concurrent writer
// losing the version race receives 409 Conflict and must re-read and retry.
func (h *SecretHandler) AddVersionHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.AddVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	privatePart, err := base64.StdEncoding.DecodeString(req.PrivatePart)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 private part: %w", err), h.logger)
		return
	}

	dataVersion, err := h.secretUseCase.AddVersion(
		c.Request.Context(),
		projectID,
		c.Param("name"),
		req.PublicPart,
		privatePart,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.AddVersionResponse{DataVersion: dataVersion})
}

// GetValueHandler retrieves and decrypts one version of a secret.
// GET /v1/projects/:project_id/secrets/:name/value?version=N
// Returns 200 OK with the decrypted payload. Without the version query
// parameter the current version is returned.
func (h *SecretHandler) GetValueHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var version *int64
	if versionStr := c.Query("version"); versionStr != "" {
		parsed, parseErr := strconv.ParseInt(versionStr, 10, 64)
		if parseErr != nil || parsed < 1 {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid version parameter: must be a positive integer"),
				h.logger,
			)
			return
		}
		version = &parsed
	}

	name := c.Param("name")
	value, err := h.secretUseCase.GetValue(c.Request.Context(), projectID, name, version)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValueToResponse(name, value))
}

// GetMetadataHandler retrieves secret metadata without touching the payload.
// GET /v1/projects/:project_id/secrets/:name
// Returns 200 OK with secret metadata.
func (h *SecretHandler) GetMetadataHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secret, err := h.secretUseCase.GetMetadata(c.Request.Context(), projectID, c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToResponse(secret))
}

// DeleteHandler soft deletes a secret and removes its version rows.
// DELETE /v1/projects/:project_id/secrets/:name
// Returns 204 No Content. Deleting an already deleted secret also returns 204.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), projectID, c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves secret summaries for a project with pagination support.
// GET /v1/projects/:project_id/secrets?offset=0&limit=50
// Returns 200 OK with the paginated secret list (never payload data).
func (h *SecretHandler) ListHandler(c *gin.Context) {
	projectID, err := projectIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), projectID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}
