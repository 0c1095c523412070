// Package mocks provides mock implementations for testing callers of the
// encryption engine.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoService "github.com/allisson/secretstore/internal/crypto/service"
)

// MockEncryptionEngine is a mock implementation of EncryptionEngine for testing.
type MockEncryptionEngine struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EncryptionEngine.
func (m *MockEncryptionEngine) Encrypt(plaintext []byte, keyID string) ([]byte, error) {
	args := m.Called(plaintext, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of EncryptionEngine.
func (m *MockEncryptionEngine) Decrypt(ciphertext []byte, keyID string) ([]byte, error) {
	args := m.Called(ciphertext, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Unseal mocks the Unseal method of EncryptionEngine.
func (m *MockEncryptionEngine) Unseal(passphrase string) error {
	args := m.Called(passphrase)
	return args.Error(0)
}

// UnsealWithKeeper mocks the UnsealWithKeeper method of EncryptionEngine.
func (m *MockEncryptionEngine) UnsealWithKeeper(ctx context.Context, keeper cryptoService.Keeper) error {
	args := m.Called(ctx, keeper)
	return args.Error(0)
}

// HasKey mocks the HasKey method of EncryptionEngine.
func (m *MockEncryptionEngine) HasKey(keyID string) bool {
	args := m.Called(keyID)
	return args.Bool(0)
}

// Close mocks the Close method of EncryptionEngine.
func (m *MockEncryptionEngine) Close() {
	m.Called()
}
