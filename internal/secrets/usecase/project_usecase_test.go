package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
	"github.com/allisson/secretstore/internal/secrets/usecase"
	"github.com/allisson/secretstore/internal/secrets/usecase/mocks"
)

func TestProjectUseCase_Create_Success(t *testing.T) {
	projectRepo := &mocks.MockProjectRepository{}
	useCase := usecase.NewProjectUseCase(projectRepo)
	ctx := context.Background()
	labels := map[string]string{"team": "billing"}

	projectRepo.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Return(nil)

	project, err := useCase.Create(ctx, "billing", labels)

	require.NoError(t, err)
	assert.Equal(t, "billing", project.Name)
	assert.Equal(t, labels, project.Labels)
	assert.NotEqual(t, uuid.Nil, project.ID)
	projectRepo.AssertExpectations(t)
}

func TestProjectUseCase_Create_MissingName(t *testing.T) {
	projectRepo := &mocks.MockProjectRepository{}
	useCase := usecase.NewProjectUseCase(projectRepo)

	project, err := useCase.Create(context.Background(), "", nil)

	assert.Nil(t, project)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectUseCase_Create_Duplicate(t *testing.T) {
	projectRepo := &mocks.MockProjectRepository{}
	useCase := usecase.NewProjectUseCase(projectRepo)
	ctx := context.Background()
	conflict := apperrors.Wrap(apperrors.ErrConflict, "project already exists")

	projectRepo.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Return(conflict)

	project, err := useCase.Create(ctx, "billing", nil)

	assert.Nil(t, project)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	projectRepo.AssertExpectations(t)
}

func TestProjectUseCase_Get(t *testing.T) {
	projectRepo := &mocks.MockProjectRepository{}
	useCase := usecase.NewProjectUseCase(projectRepo)
	ctx := context.Background()
	stored := secretsDomain.NewProject("billing", nil)

	projectRepo.On("Get", ctx, stored.ID).Return(stored, nil)

	project, err := useCase.Get(ctx, stored.ID)

	require.NoError(t, err)
	assert.Equal(t, stored, project)
	projectRepo.AssertExpectations(t)
}

func TestProjectUseCase_Get_NotFound(t *testing.T) {
	projectRepo := &mocks.MockProjectRepository{}
	useCase := usecase.NewProjectUseCase(projectRepo)
	ctx := context.Background()
	projectID := uuid.Must(uuid.NewV7())

	projectRepo.On("Get", ctx, projectID).Return(nil, secretsDomain.ErrProjectNotFound)

	project, err := useCase.Get(ctx, projectID)

	assert.Nil(t, project)
	assert.ErrorIs(t, err, secretsDomain.ErrProjectNotFound)
	projectRepo.AssertExpectations(t)
}
