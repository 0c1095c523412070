package app

import (
	"fmt"

	auditHTTP "github.com/allisson/secretstore/internal/audit/http"
	auditRepository "github.com/allisson/secretstore/internal/audit/repository"
	auditUseCase "github.com/allisson/secretstore/internal/audit/usecase"
)

// AuditEntryRepository returns the audit entry repository based on the
// database driver.
func (c *Container) AuditEntryRepository() (auditUseCase.EntryRepository, error) {
	c.auditRepoInit.Do(func() {
		repo, err := c.initAuditEntryRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
			return
		}
		c.auditRepo = repo
	})
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// AuditLogger returns the async audit logger.
func (c *Container) AuditLogger() (auditUseCase.AuditLogger, error) {
	c.auditLoggerInit.Do(func() {
		logger, err := c.initAuditLogger()
		if err != nil {
			c.initErrors["auditLogger"] = err
			return
		}
		c.auditLogger = logger
	})
	if storedErr, exists := c.initErrors["auditLogger"]; exists {
		return nil, storedErr
	}
	return c.auditLogger, nil
}

// AuditHandler returns the HTTP handler for audit trail retrieval.
func (c *Container) AuditHandler() (*auditHTTP.AuditHandler, error) {
	c.auditHandlerInit.Do(func() {
		handler, err := c.initAuditHandler()
		if err != nil {
			c.initErrors["auditHandler"] = err
			return
		}
		c.auditHandler = handler
	})
	if storedErr, exists := c.initErrors["auditHandler"]; exists {
		return nil, storedErr
	}
	return c.auditHandler, nil
}

// initAuditEntryRepository creates the audit entry repository based on the
// database driver.
func (c *Container) initAuditEntryRepository() (auditUseCase.EntryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepository.NewPostgreSQLAuditEntryRepository(db), nil
	case "mysql":
		return auditRepository.NewMySQLAuditEntryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogger creates the async audit logger with its bounded queue.
func (c *Container) initAuditLogger() (auditUseCase.AuditLogger, error) {
	repo, err := c.AuditEntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit logger: %w", err)
	}

	return auditUseCase.NewAuditLogger(
		repo,
		c.config.AuditQueueSize,
		c.config.AuditWorkers,
		c.Logger(),
	), nil
}

// initAuditHandler creates the audit HTTP handler with all its dependencies.
func (c *Container) initAuditHandler() (*auditHTTP.AuditHandler, error) {
	auditLogger, err := c.AuditLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logger for audit handler: %w", err)
	}

	authorizer, err := c.Authorizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer for audit handler: %w", err)
	}

	return auditHTTP.NewAuditHandler(auditLogger, authorizer, c.Logger()), nil
}
