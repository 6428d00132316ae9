package mocks

import (
	"context"
	"sync"

	"github.com/driano-gael/joticket/domain"
)

// RecordedCall captures one pipeline invocation
type RecordedCall struct {
	Path         string
	Opts         domain.CallOptions
	RequiresAuth bool
}

// MockAPIClient implements domain.APIClient for testing
type MockAPIClient struct {
	CallFunc func(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error)

	mu    sync.Mutex
	Calls []RecordedCall
}

// NewMockAPIClient creates a MockAPIClient with default behaviors
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Call records the invocation, then delegates to CallFunc
func (m *MockAPIClient) Call(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, RecordedCall{Path: path, Opts: opts, RequiresAuth: requiresAuth})
	m.mu.Unlock()

	if m.CallFunc != nil {
		return m.CallFunc(ctx, path, opts, requiresAuth)
	}
	// Default behavior: empty JSON success
	return &domain.APIResponse{
		StatusCode:  200,
		ContentType: "application/json",
		Raw:         []byte("{}"),
	}, nil
}
