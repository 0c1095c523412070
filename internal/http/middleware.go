package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
)

// CustomLoggerMiddleware logs HTTP requests with structured fields.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		)
	}
}

// RequestIDContextMiddleware copies the request identifier assigned by the
// requestid middleware into the request context so audit entries created
// downstream carry it. MUST run after requestid.New.
func RequestIDContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rid := requestid.Get(c); rid != "" {
			ctx := auditDomain.WithRequestID(c.Request.Context(), rid)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
