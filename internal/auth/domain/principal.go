// Package domain defines authorization domain models: the caller identity
// supplied by the external identity layer and the static rule table evaluated
// against it.
package domain

// Principal is the verified caller identity for one request. Verification
// happens in an external identity provider; only the resulting names are
// consumed here. Actor is the optional delegated identity acting on behalf of
// the principal (e.g., a human behind a service account) and is recorded in
// audit entries.
type Principal struct {
	Name  string
	Actor string
}

// IsZero reports whether no principal was supplied.
func (p Principal) IsZero() bool {
	return p.Name == ""
}
