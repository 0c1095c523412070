// Package mocks provides mock implementations for testing secret use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// MockProjectRepository is a mock implementation of ProjectRepository for testing.
type MockProjectRepository struct {
	mock.Mock
}

// Create mocks the Create method of ProjectRepository.
func (m *MockProjectRepository) Create(ctx context.Context, project *secretsDomain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// Get mocks the Get method of ProjectRepository.
func (m *MockProjectRepository) Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Project), args.Error(1)
}

// MockSecretRepository is a mock implementation of SecretRepository for testing.
type MockSecretRepository struct {
	mock.Mock
}

// Create mocks the Create method of SecretRepository.
func (m *MockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	args := m.Called(ctx, secret)
	return args.Error(0)
}

// GetByProjectAndName mocks the GetByProjectAndName method of SecretRepository.
func (m *MockSecretRepository) GetByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// GetAnyByProjectAndName mocks the GetAnyByProjectAndName method of SecretRepository.
func (m *MockSecretRepository) GetAnyByProjectAndName(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// UpdateCurrentVersion mocks the UpdateCurrentVersion method of SecretRepository.
func (m *MockSecretRepository) UpdateCurrentVersion(
	ctx context.Context,
	secretID uuid.UUID,
	observedVersion, newVersion int64,
	updatedBy string,
) error {
	args := m.Called(ctx, secretID, observedVersion, newVersion, updatedBy)
	return args.Error(0)
}

// MarkDeleted mocks the MarkDeleted method of SecretRepository.
func (m *MockSecretRepository) MarkDeleted(ctx context.Context, secretID uuid.UUID) (int64, error) {
	args := m.Called(ctx, secretID)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method of SecretRepository.
func (m *MockSecretRepository) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// MockSecretVersionRepository is a mock implementation of SecretVersionRepository for testing.
type MockSecretVersionRepository struct {
	mock.Mock
}

// Create mocks the Create method of SecretVersionRepository.
func (m *MockSecretVersionRepository) Create(ctx context.Context, version *secretsDomain.SecretVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

// Get mocks the Get method of SecretVersionRepository.
func (m *MockSecretVersionRepository) Get(
	ctx context.Context,
	secretID uuid.UUID,
	dataVersion int64,
) (*secretsDomain.SecretVersion, error) {
	args := m.Called(ctx, secretID, dataVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretVersion), args.Error(1)
}

// DeleteBySecret mocks the DeleteBySecret method of SecretVersionRepository.
func (m *MockSecretVersionRepository) DeleteBySecret(ctx context.Context, secretID uuid.UUID) error {
	args := m.Called(ctx, secretID)
	return args.Error(0)
}
