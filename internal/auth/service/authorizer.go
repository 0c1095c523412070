// Package service implements rule table evaluation for request authorization.
package service

import (
	"fmt"
	"log/slog"

	"github.com/allisson/secretstore/internal/auth/domain"
	"github.com/allisson/secretstore/internal/errors"
)

// Authorizer decides whether a principal may perform an action on a project.
type Authorizer interface {
	Authorize(principal domain.Principal, project, action string) error
}

type ruleAuthorizer struct {
	rules []domain.Rule
}

// Authorize returns nil when at least one configured rule grants the action,
// ErrUnauthorized when no principal was supplied, and ErrForbidden otherwise.
// An empty rule table denies everything.
func (r *ruleAuthorizer) Authorize(principal domain.Principal, project, action string) error {
	if principal.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "no principal supplied")
	}
	for _, rule := range r.rules {
		if rule.Matches(principal.Name, project, action) {
			return nil
		}
	}
	slog.Warn(
		"authorization denied",
		"principal", principal.Name,
		"project", project,
		"action", action,
	)
	return errors.Wrap(
		errors.ErrForbidden,
		fmt.Sprintf("principal %q is not allowed to %s on project %q", principal.Name, action, project),
	)
}

// NewAuthorizer returns an Authorizer backed by a static rule table.
func NewAuthorizer(rules []domain.Rule) Authorizer {
	return &ruleAuthorizer{rules: rules}
}
