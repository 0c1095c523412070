package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	"github.com/allisson/secretstore/internal/audit/http/dto"
	"github.com/allisson/secretstore/internal/audit/usecase/mocks"
	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	authService "github.com/allisson/secretstore/internal/auth/service"
)

func setupTestHandler(t *testing.T, rules []authDomain.Rule) (*AuditHandler, *mocks.MockAuditLogger) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockLogger := &mocks.MockAuditLogger{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuditHandler(mockLogger, authService.NewAuthorizer(rules), logger), mockLogger
}

func allowAllRules() []authDomain.Rule {
	return []authDomain.Rule{
		{User: authDomain.Wildcard, Project: authDomain.Wildcard, Actions: []string{authDomain.Wildcard}},
	}
}

func createTestContext(path string, principal *authDomain.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if principal != nil {
		req = req.WithContext(authDomain.WithPrincipal(req.Context(), *principal))
	}
	c.Request = req

	return c, w
}

func TestAuditHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockLogger := setupTestHandler(t, allowAllRules())
		projectID := uuid.Must(uuid.NewV7())
		entry := auditDomain.NewEntry(
			"req-1",
			auditDomain.ActionReadSecret,
			auditDomain.StatusSuccess,
			"alice",
			"",
			projectID,
			"db-password",
		)

		mockLogger.On(
			"List", mock.Anything, projectID, 0, 50, (*time.Time)(nil), (*time.Time)(nil),
		).Return([]*auditDomain.Entry{entry}, nil)

		c, w := createTestContext(
			"/v1/projects/"+projectID.String()+"/audit-entries",
			&authDomain.Principal{Name: "alice"},
		)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditEntriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "READ_SECRET", response.Data[0].Action)
		assert.Equal(t, "alice", response.Data[0].Principal)
		mockLogger.AssertExpectations(t)
	})

	t.Run("TimeFilters", func(t *testing.T) {
		handler, mockLogger := setupTestHandler(t, allowAllRules())
		projectID := uuid.Must(uuid.NewV7())
		from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 14, 23, 59, 59, 0, time.UTC)

		mockLogger.On("List", mock.Anything, projectID, 0, 50, &from, &to).
			Return([]*auditDomain.Entry{}, nil)

		c, w := createTestContext(
			"/v1/projects/"+projectID.String()+
				"/audit-entries?created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z",
			&authDomain.Principal{Name: "alice"},
		)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockLogger.AssertExpectations(t)
	})

	t.Run("InvertedTimeRange", func(t *testing.T) {
		handler, mockLogger := setupTestHandler(t, allowAllRules())
		projectID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(
			"/v1/projects/"+projectID.String()+
				"/audit-entries?created_at_from=2026-02-14T00:00:00Z&created_at_to=2026-02-01T00:00:00Z",
			&authDomain.Principal{Name: "alice"},
		)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockLogger.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidTimeFormat", func(t *testing.T) {
		handler, _ := setupTestHandler(t, allowAllRules())
		projectID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(
			"/v1/projects/"+projectID.String()+"/audit-entries?created_at_from=yesterday",
			&authDomain.Principal{Name: "alice"},
		)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MissingPrincipal", func(t *testing.T) {
		handler, mockLogger := setupTestHandler(t, allowAllRules())
		projectID := uuid.Must(uuid.NewV7())

		c, w := createTestContext("/v1/projects/"+projectID.String()+"/audit-entries", nil)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockLogger.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DeniedPrincipal", func(t *testing.T) {
		rules := []authDomain.Rule{
			{User: "alice", Project: authDomain.Wildcard, Actions: []string{authDomain.Wildcard}},
		}
		handler, mockLogger := setupTestHandler(t, rules)
		projectID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(
			"/v1/projects/"+projectID.String()+"/audit-entries",
			&authDomain.Principal{Name: "mallory"},
		)
		c.Params = gin.Params{{Key: "project_id", Value: projectID.String()}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockLogger.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidProjectID", func(t *testing.T) {
		handler, _ := setupTestHandler(t, allowAllRules())

		c, w := createTestContext("/v1/projects/not-a-uuid/audit-entries", &authDomain.Principal{Name: "alice"})
		c.Params = gin.Params{{Key: "project_id", Value: "not-a-uuid"}}

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
