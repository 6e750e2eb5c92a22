package state

import "sync"

// Mock is an in-memory Interface for tests.
type Mock struct {
	mu     sync.Mutex
	nav    *NavigationState
	saves  []NavigationState
	closed bool
}

// NewMock creates a mock holding nav, which may be nil.
func NewMock(nav *NavigationState) *Mock {
	return &Mock{nav: nav}
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nav == nil {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	nav := *m.nav
	return &nav, nil
}

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = &state
	m.saves = append(m.saves, state)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Saves returns every state saved so far.
func (m *Mock) Saves() []NavigationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NavigationState(nil), m.saves...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
