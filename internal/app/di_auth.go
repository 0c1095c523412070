package app

import (
	"fmt"

	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	authService "github.com/allisson/secretstore/internal/auth/service"
	"github.com/allisson/secretstore/internal/readonly"
)

// Authorizer returns the rule-based authorizer built from AUTHORIZATION_RULES.
func (c *Container) Authorizer() (authService.Authorizer, error) {
	c.authorizerInit.Do(func() {
		authorizer, err := c.initAuthorizer()
		if err != nil {
			c.initErrors["authorizer"] = err
			return
		}
		c.authorizer = authorizer
	})
	if storedErr, exists := c.initErrors["authorizer"]; exists {
		return nil, storedErr
	}
	return c.authorizer, nil
}

// ReadOnlyGuard returns the read-only mode guard.
func (c *Container) ReadOnlyGuard() *readonly.Guard {
	c.guardInit.Do(func() {
		c.guard = readonly.NewGuard(c.config.ReadOnlyEnabled)
	})
	return c.guard
}

// initAuthorizer parses the configured rule table. The rules are loaded once
// and stay immutable for the process lifetime.
func (c *Container) initAuthorizer() (authService.Authorizer, error) {
	rules, err := authDomain.ParseRules(c.config.AuthorizationRules)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorization rules: %w", err)
	}

	return authService.NewAuthorizer(rules), nil
}
