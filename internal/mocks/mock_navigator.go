package mocks

import "sync"

// MockNavigator implements domain.Navigator for testing
type MockNavigator struct {
	CurrentRouteFunc func() string

	mu      sync.Mutex
	current string
	Visited []string
}

// NewMockNavigator creates a navigator sitting on the given route
func NewMockNavigator(current string) *MockNavigator {
	return &MockNavigator{current: current}
}

// CurrentRoute returns the route the navigator sits on
func (m *MockNavigator) CurrentRoute() string {
	if m.CurrentRouteFunc != nil {
		return m.CurrentRouteFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// NavigateTo records the redirect and moves the navigator
func (m *MockNavigator) NavigateTo(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = route
	m.Visited = append(m.Visited, route)
}

// VisitedRoutes returns a copy of every redirect performed
func (m *MockNavigator) VisitedRoutes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Visited))
	copy(out, m.Visited)
	return out
}
