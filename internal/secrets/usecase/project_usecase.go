package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/secretstore/internal/errors"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// projectUseCase implements ProjectUseCase.
type projectUseCase struct {
	projectRepo ProjectRepository
}

// Create stores a new project.
func (p *projectUseCase) Create(
	ctx context.Context,
	name string,
	labels map[string]string,
) (*secretsDomain.Project, error) {
	if name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name is required")
	}

	project := secretsDomain.NewProject(name, labels)
	if err := p.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get retrieves a project by ID.
func (p *projectUseCase) Get(ctx context.Context, projectID uuid.UUID) (*secretsDomain.Project, error) {
	return p.projectRepo.Get(ctx, projectID)
}

// NewProjectUseCase creates a new project use case instance.
func NewProjectUseCase(projectRepo ProjectRepository) ProjectUseCase {
	return &projectUseCase{projectRepo: projectRepo}
}
