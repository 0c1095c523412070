package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
	"github.com/allisson/secretstore/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/secretstore/internal/secrets/usecase"
	"github.com/allisson/secretstore/internal/secrets/usecase/mocks"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*SecretHandler, *mocks.MockSecretUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockSecretUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSecretHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func secretParams(projectID uuid.UUID, name string) gin.Params {
	params := gin.Params{{Key: "project_id", Value: projectID.String()}}
	if name != "" {
		params = append(params, gin.Param{Key: "name", Value: name})
	}
	return params
}

func TestSecretHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		projectID := uuid.Must(uuid.NewV7())
		privatePart := []byte("super-secret-password")
		request := dto.CreateSecretRequest{
			Name:        "db-password",
			Provider:    secretsDomain.ProviderSelf,
			PublicPart:  "postgres://db.example.com",
			PrivatePart: base64.StdEncoding.EncodeToString(privatePart),
		}
		expectedSecret := secretsDomain.NewSecret(projectID, "db-password", secretsDomain.ProviderSelf, nil, "alice")

		mockUseCase.On("Create", mock.Anything, &secretsUseCase.CreateSecretInput{
			ProjectID:   projectID,
			Name:        "db-password",
			Provider:    secretsDomain.ProviderSelf,
			PublicPart:  "postgres://db.example.com",
			PrivatePart: privatePart,
		}).Return(expectedSecret, nil)

		c, w := createTestContext(http.MethodPost, "/v1/projects/"+projectID.String()+"/secrets", request)
		c.Params = secretParams(projectID, "")

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.SecretResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, expectedSecret.ID.String(), response.ID)
		assert.Equal(t, "db-password", response.Name)
		assert.Equal(t, int64(1), response.CurrentVersion)
		assert.Equal(t, "ACTIVE", response.State)
		assert.Equal(t, "alice", response.CreatedBy)
		// The payload is never echoed back on creation.
		assert.NotContains(t, w.Body.String(), "private_part")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("InvalidProjectID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/projects/not-a-uuid/secrets", dto.CreateSecretRequest{})
		c.Params = gin.Params{{Key: "project_id", Value: "not-a-uuid"}}

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingName", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		request := map[string]string{
			"provider":     secretsDomain.ProviderSelf,
			"private_part": base64.StdEncoding.EncodeToString([]byte("value")),
		}

		c, w := createTestContext(http.MethodPost, "/v1/projects/"+projectID.String()+"/secrets", request)
		c.Params = secretParams(projectID, "")

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidBase64PrivatePart", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		request := map[string]string{
			"name":         "db-password",
			"provider":     secretsDomain.ProviderSelf,
			"private_part": "not base64!!",
		}

		c, w := createTestContext(http.MethodPost, "/v1/projects/"+projectID.String()+"/secrets", request)
		c.Params = secretParams(projectID, "")

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateMapsToConflict", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		request := dto.CreateSecretRequest{
			Name:        "db-password",
			Provider:    secretsDomain.ProviderSelf,
			PrivatePart: base64.StdEncoding.EncodeToString([]byte("value")),
		}

		mockUseCase.On("Create", mock.Anything, mock.AnythingOfType("*usecase.CreateSecretInput")).
			Return(nil, secretsDomain.ErrSecretAlreadyExists)

		c, w := createTestContext(http.MethodPost, "/v1/projects/"+projectID.String()+"/secrets", request)
		c.Params = secretParams(projectID, "")

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestSecretHandler_AddVersionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		privatePart := []byte("rotated-password")
		request := dto.AddVersionRequest{
			PublicPart:  "postgres://db.example.com",
			PrivatePart: base64.StdEncoding.EncodeToString(privatePart),
		}

		mockUseCase.On("AddVersion", mock.Anything, projectID, "db-password", "postgres://db.example.com", privatePart).
			Return(int64(2), nil)

		c, w := createTestContext(
			http.MethodPost,
			"/v1/projects/"+projectID.String()+"/secrets/db-password/versions",
			request,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.AddVersionHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.AddVersionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.DataVersion)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("VersionConflict", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		request := dto.AddVersionRequest{
			PrivatePart: base64.StdEncoding.EncodeToString([]byte("value")),
		}

		mockUseCase.On("AddVersion", mock.Anything, projectID, "db-password", "", []byte("value")).
			Return(int64(0), secretsDomain.ErrVersionConflict)

		c, w := createTestContext(
			http.MethodPost,
			"/v1/projects/"+projectID.String()+"/secrets/db-password/versions",
			request,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.AddVersionHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestSecretHandler_GetValueHandler(t *testing.T) {
	t.Run("CurrentVersion", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetValue", mock.Anything, projectID, "db-password", (*int64)(nil)).
			Return(&secretsUseCase.SecretValue{
				PublicPart:  "postgres://db.example.com",
				PrivatePart: []byte("super-secret"),
				DataVersion: 3,
			}, nil)

		c, w := createTestContext(
			http.MethodGet,
			"/v1/projects/"+projectID.String()+"/secrets/db-password/value",
			nil,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.GetValueHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SecretValueResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "db-password", response.Name)
		assert.Equal(t, int64(3), response.DataVersion)
		assert.Equal(t, []byte("super-secret"), response.PrivatePart)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("ExplicitVersion", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())
		version := int64(1)

		mockUseCase.On("GetValue", mock.Anything, projectID, "db-password", &version).
			Return(&secretsUseCase.SecretValue{PrivatePart: []byte("old"), DataVersion: 1}, nil)

		c, w := createTestContext(
			http.MethodGet,
			"/v1/projects/"+projectID.String()+"/secrets/db-password/value?version=1",
			nil,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.GetValueHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("InvalidVersionParameter", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(
			http.MethodGet,
			"/v1/projects/"+projectID.String()+"/secrets/db-password/value?version=zero",
			nil,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.GetValueHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "GetValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetValue", mock.Anything, projectID, "missing", (*int64)(nil)).
			Return(nil, secretsDomain.ErrSecretNotFound)

		c, w := createTestContext(
			http.MethodGet,
			"/v1/projects/"+projectID.String()+"/secrets/missing/value",
			nil,
		)
		c.Params = secretParams(projectID, "missing")

		handler.GetValueHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestSecretHandler_GetMetadataHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	projectID := uuid.Must(uuid.NewV7())
	secret := secretsDomain.NewSecret(projectID, "db-password", secretsDomain.ProviderSelf, nil, "alice")
	secret.CurrentVersion = 5

	mockUseCase.On("GetMetadata", mock.Anything, projectID, "db-password").Return(secret, nil)

	c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/secrets/db-password", nil)
	c.Params = secretParams(projectID, "db-password")

	handler.GetMetadataHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SecretResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(5), response.CurrentVersion)
	assert.NotContains(t, w.Body.String(), "private_part")
	mockUseCase.AssertExpectations(t)
}

func TestSecretHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, projectID, "db-password").Return(nil)

		c, w := createTestContext(
			http.MethodDelete,
			"/v1/projects/"+projectID.String()+"/secrets/db-password",
			nil,
		)
		c.Params = secretParams(projectID, "db-password")

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("NeverExisted", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		projectID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, projectID, "missing").
			Return(secretsDomain.ErrSecretNotFound)

		c, w := createTestContext(
			http.MethodDelete,
			"/v1/projects/"+projectID.String()+"/secrets/missing",
			nil,
		)
		c.Params = secretParams(projectID, "missing")

		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestSecretHandler_ListHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	projectID := uuid.Must(uuid.NewV7())
	secrets := []*secretsDomain.Secret{
		secretsDomain.NewSecret(projectID, "first", secretsDomain.ProviderSelf, nil, "alice"),
		secretsDomain.NewSecret(projectID, "second", secretsDomain.ProviderSelf, nil, "alice"),
	}

	mockUseCase.On("List", mock.Anything, projectID, 0, 50).Return(secrets, nil)

	c, w := createTestContext(http.MethodGet, "/v1/projects/"+projectID.String()+"/secrets", nil)
	c.Params = secretParams(projectID, "")

	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListSecretsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, "first", response.Data[0].Name)
	mockUseCase.AssertExpectations(t)
}
