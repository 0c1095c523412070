package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
	secretsUseCase "github.com/allisson/secretstore/internal/secrets/usecase"
)

// MockSecretUseCase is a mock implementation of SecretUseCase for testing.
type MockSecretUseCase struct {
	mock.Mock
}

// Create mocks the Create method of SecretUseCase.
func (m *MockSecretUseCase) Create(
	ctx context.Context,
	input *secretsUseCase.CreateSecretInput,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// AddVersion mocks the AddVersion method of SecretUseCase.
func (m *MockSecretUseCase) AddVersion(
	ctx context.Context,
	projectID uuid.UUID,
	name, publicPart string,
	privatePart []byte,
) (int64, error) {
	args := m.Called(ctx, projectID, name, publicPart, privatePart)
	return args.Get(0).(int64), args.Error(1)
}

// GetValue mocks the GetValue method of SecretUseCase.
func (m *MockSecretUseCase) GetValue(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
	version *int64,
) (*secretsUseCase.SecretValue, error) {
	args := m.Called(ctx, projectID, name, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsUseCase.SecretValue), args.Error(1)
}

// GetMetadata mocks the GetMetadata method of SecretUseCase.
func (m *MockSecretUseCase) GetMetadata(
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

// Delete mocks the Delete method of SecretUseCase.
func (m *MockSecretUseCase) Delete(ctx context.Context, projectID uuid.UUID, name string) error {
	args := m.Called(ctx, projectID, name)
	return args.Error(0)
}

// List mocks the List method of SecretUseCase.
func (m *MockSecretUseCase) List(
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

// MockProjectUseCase is a mock implementation of ProjectUseCase for testing.
type MockProjectUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ProjectUseCase.
func (m *MockProjectUseCase) Create(
	ctx context.Context,
	name string,
	labels map[string]string,
) (*secretsDomain.Project, error) {
	args := m.Called(ctx, name, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Project), args.Error(1)
}

// Get mocks the Get method of ProjectUseCase.
func (m *MockProjectUseCase) Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Project), args.Error(1)
}
