package mocks

import (
	"context"
	"sync"

	"github.com/driano-gael/joticket/domain"
)

// MockAccountRepository implements domain.AccountRepository for testing
type MockAccountRepository struct {
	SaveFunc  func(ctx context.Context, account *domain.Account)
	LoadFunc  func(ctx context.Context) (*domain.Account, error)
	ClearFunc func(ctx context.Context)

	mu         sync.Mutex
	account    *domain.Account
	ClearCalls int
}

// NewMockAccountRepository creates a MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// Save holds the account in memory
func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) {
	if m.SaveFunc != nil {
		m.SaveFunc(ctx, account)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.account = &copied
}

// Load returns the held account or ErrSessionNotFound
func (m *MockAccountRepository) Load(ctx context.Context) (*domain.Account, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.account == nil {
		return nil, domain.ErrSessionNotFound
	}
	copied := *m.account
	return &copied, nil
}

// Clear drops the held account and counts the call
func (m *MockAccountRepository) Clear(ctx context.Context) {
	if m.ClearFunc != nil {
		m.ClearFunc(ctx)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = nil
	m.ClearCalls++
}
