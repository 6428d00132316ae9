package mocks

import (
	"context"
	"sync"
)

// MockTokenStore implements domain.TokenStore for testing
type MockTokenStore struct {
	AccessTokenFunc    func(ctx context.Context) string
	RefreshTokenFunc   func(ctx context.Context) string
	SetPairFunc        func(ctx context.Context, access, refresh string)
	SetAccessTokenFunc func(ctx context.Context, access string)
	ClearFunc          func(ctx context.Context)
	IsValidFunc        func(ctx context.Context) bool

	mu         sync.Mutex
	access     string
	refresh    string
	ClearCalls int
}

// NewMockTokenStore creates a MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// AccessToken returns the held access token
func (m *MockTokenStore) AccessToken(ctx context.Context) string {
	if m.AccessTokenFunc != nil {
		return m.AccessTokenFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

// RefreshToken returns the held refresh token
func (m *MockTokenStore) RefreshToken(ctx context.Context) string {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

// SetPair replaces both tokens
func (m *MockTokenStore) SetPair(ctx context.Context, access, refresh string) {
	if m.SetPairFunc != nil {
		m.SetPairFunc(ctx, access, refresh)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
}

// SetAccessToken replaces the access token only
func (m *MockTokenStore) SetAccessToken(ctx context.Context, access string) {
	if m.SetAccessTokenFunc != nil {
		m.SetAccessTokenFunc(ctx, access)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
}

// Clear drops both tokens and counts the call
func (m *MockTokenStore) Clear(ctx context.Context) {
	if m.ClearFunc != nil {
		m.ClearFunc(ctx)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.ClearCalls++
}

// IsValid reports whether an access token is held
func (m *MockTokenStore) IsValid(ctx context.Context) bool {
	if m.IsValidFunc != nil {
		return m.IsValidFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access != ""
}
