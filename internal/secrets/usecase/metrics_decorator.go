package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/secretstore/internal/metrics"
	secretsDomain "github.com/allisson/secretstore/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}

// Create records metrics for secret creation.
func (s *secretUseCaseWithMetrics) Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Create(ctx, input)
	s.record(ctx, "secret_create", start, err)
	return secret, err
}

// AddVersion records metrics for version upgrades.
func (s *secretUseCaseWithMetrics) AddVersion(
	ctx context.Context,
	projectID uuid.UUID,
	name, publicPart string,
	privatePart []byte,
) (int64, error) {
	start := time.Now()
	newVersion, err := s.next.AddVersion(ctx, projectID, name, publicPart, privatePart)
	s.record(ctx, "secret_add_version", start, err)
	return newVersion, err
}

// GetValue records metrics for value reads.
func (s *secretUseCaseWithMetrics) GetValue(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
	version *int64,
) (*SecretValue, error) {
	start := time.Now()
	value, err := s.next.GetValue(ctx, projectID, name, version)
	s.record(ctx, "secret_get_value", start, err)
	return value, err
}

// GetMetadata records metrics for metadata reads.
func (s *secretUseCaseWithMetrics) GetMetadata(
	ctx context.Context,
	projectID uuid.UUID,
	name string,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.GetMetadata(ctx, projectID, name)
	s.record(ctx, "secret_get_metadata", start, err)
	return secret, err
}

// Delete records metrics for secret deletion.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, projectID uuid.UUID, name string) error {
	start := time.Now()
	err := s.next.Delete(ctx, projectID, name)
	s.record(ctx, "secret_delete", start, err)
	return err
}

// List records metrics for secret listings.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, projectID, offset, limit)
	s.record(ctx, "secret_list", start, err)
	return secrets, err
}
