package app

import (
	"fmt"

	secretsHTTP "github.com/allisson/secretstore/internal/secrets/http"
	secretsRepository "github.com/allisson/secretstore/internal/secrets/repository"
	secretsUseCase "github.com/allisson/secretstore/internal/secrets/usecase"
)

// ProjectRepository returns the project repository based on the database driver.
func (c *Container) ProjectRepository() (secretsUseCase.ProjectRepository, error) {
	c.projectRepoInit.Do(func() {
		repo, err := c.initProjectRepository()
		if err != nil {
			c.initErrors["projectRepo"] = err
			return
		}
		c.projectRepo = repo
	})
	if storedErr, exists := c.initErrors["projectRepo"]; exists {
		return nil, storedErr
	}
	return c.projectRepo, nil
}

// SecretRepository returns the secret repository based on the database driver.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	c.secretRepoInit.Do(func() {
		repo, err := c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepo"] = err
			return
		}
		c.secretRepo = repo
	})
	if storedErr, exists := c.initErrors["secretRepo"]; exists {
		return nil, storedErr
	}
	return c.secretRepo, nil
}

// SecretVersionRepository returns the version repository based on the database driver.
func (c *Container) SecretVersionRepository() (secretsUseCase.SecretVersionRepository, error) {
	c.versionRepoInit.Do(func() {
		repo, err := c.initSecretVersionRepository()
		if err != nil {
			c.initErrors["versionRepo"] = err
			return
		}
		c.versionRepo = repo
	})
	if storedErr, exists := c.initErrors["versionRepo"]; exists {
		return nil, storedErr
	}
	return c.versionRepo, nil
}

// SecretUseCase returns the guarded secret use case: the base use case
// wrapped with metrics recording, then authorization, read-only gating and
// audit submission.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	c.secretUseCaseInit.Do(func() {
		useCase, err := c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}
		c.secretUseCase = useCase
	})
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// ProjectUseCase returns the project use case.
func (c *Container) ProjectUseCase() (secretsUseCase.ProjectUseCase, error) {
	c.projectUseCaseInit.Do(func() {
		useCase, err := c.initProjectUseCase()
		if err != nil {
			c.initErrors["projectUseCase"] = err
			return
		}
		c.projectUseCase = useCase
	})
	if storedErr, exists := c.initErrors["projectUseCase"]; exists {
		return nil, storedErr
	}
	return c.projectUseCase, nil
}

// SecretHandler returns the HTTP handler for secret management operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	c.secretHandlerInit.Do(func() {
		handler, err := c.initSecretHandler()
		if err != nil {
			c.initErrors["secretHandler"] = err
			return
		}
		c.secretHandler = handler
	})
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initProjectRepository creates the project repository based on the database driver.
func (c *Container) initProjectRepository() (secretsUseCase.ProjectRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for project repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLProjectRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLProjectRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretRepository creates the secret repository based on the database driver.
func (c *Container) initSecretRepository() (secretsUseCase.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretVersionRepository creates the version repository based on the database driver.
func (c *Container) initSecretVersionRepository() (secretsUseCase.SecretVersionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for version repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretVersionRepository(db), nil
	case "mysql":
		return secretsRepository.NewMySQLSecretVersionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	projectRepo, err := c.ProjectRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get project repository for secret use case: %w", err)
	}

	secretRepo, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	versionRepo, err := c.SecretVersionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get version repository for secret use case: %w", err)
	}

	engine, err := c.EncryptionEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption engine for secret use case: %w", err)
	}

	useCase := secretsUseCase.NewSecretUseCase(
		txManager,
		projectRepo,
		secretRepo,
		versionRepo,
		engine,
		c.config.DefaultEncryptionKeyID,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
		}
		useCase = secretsUseCase.NewSecretUseCaseWithMetrics(useCase, businessMetrics)
	}

	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for secret use case: %w", err)
	}

	auditLogger, err := c.AuditLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logger for secret use case: %w", err)
	}

	return secretsUseCase.NewGuardedSecretUseCase(
		useCase,
		authorizer,
		c.ReadOnlyGuard(),
		auditLogger,
	), nil
}

// initProjectUseCase creates the project use case.
func (c *Container) initProjectUseCase() (secretsUseCase.ProjectUseCase, error) {
	projectRepo, err := c.ProjectRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get project repository for project use case: %w", err)
	}

	return secretsUseCase.NewProjectUseCase(projectRepo), nil
}

// initSecretHandler creates the secret HTTP handler with all its dependencies.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(secretUseCase, c.Logger()), nil
}
