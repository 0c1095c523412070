package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
)

// MockAuditLogger is a mock implementation of AuditLogger for testing.
type MockAuditLogger struct {
	mock.Mock
}

// Log mocks the Log method of AuditLogger.
func (m *MockAuditLogger) Log(entry *auditDomain.Entry) {
	m.Called(entry)
}

// List mocks the List method of AuditLogger.
func (m *MockAuditLogger) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	args := m.Called(ctx, projectID, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Entry), args.Error(1)
}

// Shutdown mocks the Shutdown method of AuditLogger.
func (m *MockAuditLogger) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
