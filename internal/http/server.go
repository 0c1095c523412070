// Package http provides the API server: router assembly, middleware stack and
// health endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/allisson/secretstore/internal/audit/http"
	authHTTP "github.com/allisson/secretstore/internal/auth/http"
	"github.com/allisson/secretstore/internal/metrics"
	secretsHTTP "github.com/allisson/secretstore/internal/secrets/http"
)

// RouterConfig holds the handlers and options used to assemble the API router.
type RouterConfig struct {
	SecretHandler *secretsHTTP.SecretHandler
	AuditHandler  *auditHTTP.AuditHandler

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MeterProvider enables the HTTP metrics middleware when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server. The router is assembled separately via
// SetupRouter so tests can exercise handlers without a full dependency graph.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the gin router with the middleware stack and routes.
//
// Middleware order matters: request ids are assigned first so every log line
// and audit entry carries one, then identity extraction and rate limiting run
// inside the /v1 group only, leaving health endpoints unauthenticated.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(RequestIDContextMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(authHTTP.IdentityMiddleware(s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if cfg.SecretHandler != nil {
		v1.POST("/projects/:project_id/secrets", cfg.SecretHandler.CreateHandler)
		v1.GET("/projects/:project_id/secrets", cfg.SecretHandler.ListHandler)
		v1.GET("/projects/:project_id/secrets/:name", cfg.SecretHandler.GetMetadataHandler)
		v1.DELETE("/projects/:project_id/secrets/:name", cfg.SecretHandler.DeleteHandler)
		v1.POST("/projects/:project_id/secrets/:name/versions", cfg.SecretHandler.AddVersionHandler)
		v1.GET("/projects/:project_id/secrets/:name/value", cfg.SecretHandler.GetValueHandler)
	}

	if cfg.AuditHandler != nil {
		v1.GET("/projects/:project_id/audit-entries", cfg.AuditHandler.ListHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the service can serve traffic, checking
// the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the API server. Blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
