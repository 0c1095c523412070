// Package mocks provides mock implementations for testing audit use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
)

// MockEntryRepository is a mock implementation of EntryRepository for testing.
type MockEntryRepository struct {
	mock.Mock
}

// Create mocks the Create method of EntryRepository.
func (m *MockEntryRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// List mocks the List method of EntryRepository.
func (m *MockEntryRepository) List(
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
