// Package http provides HTTP handlers for audit trail retrieval.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	"github.com/allisson/secretstore/internal/audit/http/dto"
	auditUseCase "github.com/allisson/secretstore/internal/audit/usecase"
	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	authService "github.com/allisson/secretstore/internal/auth/service"
	apperrors "github.com/allisson/secretstore/internal/errors"
	"github.com/allisson/secretstore/internal/httputil"
)

// AuditHandler handles HTTP requests for audit trail retrieval. Reading the
// trail is authorized like any other project operation but is not itself
// audited.
type AuditHandler struct {
	auditLogger auditUseCase.AuditLogger
	authorizer  authService.Authorizer
	logger      *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(
	auditLogger auditUseCase.AuditLogger,
	authorizer authService.Authorizer,
	logger *slog.Logger,
) *AuditHandler {
	return &AuditHandler{
		auditLogger: auditLogger,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// ListHandler retrieves audit entries for a project, newest first, with
// pagination and optional time-based filtering.
// GET /v1/projects/:project_id/audit-entries?offset=0&limit=50&created_at_from=...&created_at_to=...
// Accepts optional created_at_from and created_at_to query parameters in
// RFC3339 format. Timestamps are converted to UTC. Both boundaries are
// inclusive (>= and <=).
func (h *AuditHandler) ListHandler(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid project id: must be a uuid"), h.logger)
		return
	}

	principal, ok := authDomain.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "no principal in context"), h.logger)
		return
	}
	if err := h.authorizer.Authorize(
		principal,
		projectID.String(),
		string(auditDomain.ActionReadAudit),
	); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var createdAtFrom *time.Time
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtFrom = &utcTime
	}

	var createdAtTo *time.Time
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-02-14T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtTo = &utcTime
	}

	if createdAtFrom != nil && createdAtTo != nil && createdAtFrom.After(*createdAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	entries, err := h.auditLogger.List(c.Request.Context(), projectID, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}
