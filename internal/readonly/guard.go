// Package readonly implements the global write gate used to freeze mutations
// during maintenance windows while keeping reads available.
package readonly

import (
	"sync/atomic"

	"github.com/allisson/secretstore/internal/errors"
)

// Guard rejects mutating operations while the service runs in read-only mode.
// The mode is set at startup from configuration and can be flipped at runtime.
type Guard struct {
	enabled atomic.Bool
}

// NewGuard returns a Guard with the given initial mode.
func NewGuard(enabled bool) *Guard {
	g := &Guard{}
	g.enabled.Store(enabled)
	return g
}

// Check returns ErrReadOnly when the guard is enabled and the operation
// mutates state. Exempt operations pass regardless of mode; the exemption is
// for internal maintenance writes such as audit flushing.
func (g *Guard) Check(mutating, exempt bool) error {
	if !g.enabled.Load() || !mutating || exempt {
		return nil
	}
	return errors.Wrap(errors.ErrReadOnly, "mutating operation rejected")
}

// Enabled reports the current mode.
func (g *Guard) Enabled() bool {
	return g.enabled.Load()
}

// SetEnabled flips the mode at runtime.
func (g *Guard) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}
