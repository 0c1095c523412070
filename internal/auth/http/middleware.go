package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/secretstore/internal/auth/domain"
	apperrors "github.com/allisson/secretstore/internal/errors"
	"github.com/allisson/secretstore/internal/httputil"
)

// Header names carrying the verified caller identity. Identity verification
// happens upstream (gateway or sidecar); this service only consumes the
// resulting names.
const (
	PrincipalHeader = "X-Principal"
	ActorHeader     = "X-Actor"
)

// IdentityMiddleware extracts the caller identity from request headers and
// stores it in the request context for downstream handlers.
//
// Error handling:
//   - Missing X-Principal header → 401 Unauthorized
//
// The X-Actor header is optional and records the delegated identity acting on
// behalf of the principal; it flows into audit entries.
func IdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := authDomain.Principal{
			Name:  c.GetHeader(PrincipalHeader),
			Actor: c.GetHeader(ActorHeader),
		}
		if principal.IsZero() {
			logger.Debug("identity extraction failed: missing principal header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := authDomain.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
