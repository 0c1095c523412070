package domain

import (
	"encoding/json"
	"slices"

	"github.com/allisson/secretstore/internal/errors"
)

// Wildcard matches any value in a rule field.
const Wildcard = "*"

var (
	// ErrInvalidRules is returned when the configured rule set cannot be parsed.
	ErrInvalidRules = errors.Wrap(errors.ErrInvalidInput, "invalid authorization rules")
)

// Rule grants a principal a set of actions on a project. Each field accepts
// the wildcard "*". Rules only grant, never deny: access is allowed if at
// least one rule matches, otherwise denied.
type Rule struct {
	User    string   `json:"user"`
	Project string   `json:"project"`
	Actions []string `json:"actions"`
}

// Matches reports whether the rule grants the given user the given action on
// the given project.
func (r Rule) Matches(user, project, action string) bool {
	if r.User != Wildcard && r.User != user {
		return false
	}
	if r.Project != Wildcard && r.Project != project {
		return false
	}
	return slices.Contains(r.Actions, Wildcard) || slices.Contains(r.Actions, action)
}

// ParseRules decodes the JSON rule table loaded from configuration. An empty
// input yields an empty rule set, which denies everything.
func ParseRules(raw string) ([]Rule, error) {
	if raw == "" {
		return nil, nil
	}
	var rules []Rule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, ErrInvalidRules
	}
	for _, rule := range rules {
		if rule.User == "" || rule.Project == "" || len(rule.Actions) == 0 {
			return nil, ErrInvalidRules
		}
	}
	return rules, nil
}
