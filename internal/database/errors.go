package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/secretstore/internal/errors"
)

// WrapError wraps a storage error with context, translating driver-level
// connection failures into ErrUnavailable so a store outage surfaces as a
// retryable condition instead of an internal error. Non-connection errors
// pass through with their chain intact.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", message, apperrors.ErrUnavailable, err)
	}
	return apperrors.Wrap(err, message)
}

// isConnectionError reports whether err indicates the database is
// unreachable rather than a failure of the statement itself.
func isConnectionError(err error) bool {
	if apperrors.Is(err, driver.ErrBadConn) ||
		apperrors.Is(err, mysql.ErrInvalidConn) ||
		apperrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if apperrors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		// Class 08: connection exception. Class 57: operator intervention
		// (server shutdown in progress).
		class := pqErr.Code.Class()
		return class == "08" || class == "57"
	}

	return false
}
