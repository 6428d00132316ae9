package mocks

import (
	"context"
	"sync"

	"github.com/driano-gael/joticket/domain"
)

// MockKeyValueStore implements domain.KeyValueStore for testing. Without
// overrides it behaves as a working in-memory store; the Func fields let a
// test inject storage failures per operation.
type MockKeyValueStore struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string) error
	DeleteFunc func(ctx context.Context, keys ...string) error

	mu     sync.Mutex
	values map[string]string
}

// NewMockKeyValueStore creates a MockKeyValueStore with default behaviors
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{values: make(map[string]string)}
}

// Get returns the stored value or ErrKeyNotFound
func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

// Set stores the value
func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes the keys
func (m *MockKeyValueStore) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Seed preloads a value, bypassing SetFunc
func (m *MockKeyValueStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Stored reads a value directly, bypassing GetFunc
func (m *MockKeyValueStore) Stored(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}
