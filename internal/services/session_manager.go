package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

// SessionManager implements domain.SessionLifecycle. It listens for the
// pipeline's session-expiry broadcast, remembers the interrupted route for a
// post-login redirect, and drives the reconnect countdown shown to the user.
//
// The countdown always starts from its full tick count: closing the notice
// cancels the running countdown, and the next expiry starts over. Partial
// counts never persist across a close.
type SessionManager struct {
	mu              sync.Mutex
	state           domain.SessionState
	remaining       int
	rememberedRoute string

	// generation invalidates countdown goroutines left over from a
	// dismissed or reconnected notice.
	generation int

	ticks      int
	interval   time.Duration
	homeRoute  string
	loginRoute string

	nav domain.Navigator

	nextObserver  int
	tickObservers map[int]func(remaining int)

	log zerolog.Logger
}

// NewSessionManager creates the manager and subscribes it to the session
// expiry broadcast.
func NewSessionManager(
	ticks int,
	interval time.Duration,
	homeRoute, loginRoute string,
	nav domain.Navigator,
	bus domain.SessionBroadcaster,
	log zerolog.Logger,
) *SessionManager {
	m := &SessionManager{
		state:         domain.SessionActive,
		ticks:         ticks,
		interval:      interval,
		homeRoute:     homeRoute,
		loginRoute:    loginRoute,
		nav:           nav,
		tickObservers: make(map[int]func(int)),
		log:           log,
	}

	bus.Subscribe(func(event domain.SessionEventType) {
		if event == domain.SessionExpiredEvent {
			m.HandleExpiry()
		}
	})

	return m
}

// HandleExpiry transitions active -> expired-pending. If the notice is
// already showing, a further expiry signal is ignored. The current route is
// remembered for the post-login redirect unless it is the home or login
// location.
func (m *SessionManager) HandleExpiry() {
	m.mu.Lock()
	if m.state == domain.SessionExpiryPending {
		m.mu.Unlock()
		return
	}

	current := m.nav.CurrentRoute()
	if current != m.homeRoute && current != m.loginRoute {
		m.rememberedRoute = current
	}

	m.state = domain.SessionExpiryPending
	m.remaining = m.ticks
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	m.log.Info().Str("route", current).Msg("session expired, reconnect notice shown")
	go m.runCountdown(gen)
}

// State implements domain.SessionLifecycle
func (m *SessionManager) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Remaining implements domain.SessionLifecycle
func (m *SessionManager) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining
}

// Reconnect implements domain.SessionLifecycle: the user chose to log back
// in, so the countdown is irrelevant and the redirect happens now.
func (m *SessionManager) Reconnect() {
	if !m.cancelCountdown() {
		return
	}
	m.log.Info().Msg("user reconnecting")
	m.nav.NavigateTo(m.loginRoute)
}

// Dismiss implements domain.SessionLifecycle: the notice is closed without
// reconnecting. No redirect; the session stays cleared.
func (m *SessionManager) Dismiss() {
	if !m.cancelCountdown() {
		return
	}
	m.log.Info().Msg("reconnect notice dismissed")
}

// ConsumeRedirect implements domain.SessionLifecycle. Returning and clearing
// under one lock guarantees no double redirect and no stale route reused by
// a later unrelated failure.
func (m *SessionManager) ConsumeRedirect() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route := m.rememberedRoute
	m.rememberedRoute = ""
	return route, route != ""
}

// OnCountdownTick implements domain.SessionLifecycle
func (m *SessionManager) OnCountdownTick(fn func(remaining int)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextObserver
	m.nextObserver++
	m.tickObservers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tickObservers, id)
	}
}

// cancelCountdown moves expired-pending back to active without redirecting.
// It reports false when no notice was showing.
func (m *SessionManager) cancelCountdown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.SessionExpiryPending {
		return false
	}
	m.state = domain.SessionActive
	m.remaining = 0
	m.generation++
	return true
}

// runCountdown decrements once per tick and fires the automatic redirect at
// the tick that reaches zero. The generation check makes a countdown
// orphaned by Dismiss or Reconnect exit without side effects.
func (m *SessionManager) runCountdown(gen int) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		if m.generation != gen || m.state != domain.SessionExpiryPending {
			m.mu.Unlock()
			return
		}

		m.remaining--
		remaining := m.remaining
		done := remaining <= 0
		if done {
			m.state = domain.SessionActive
			m.generation++
		}

		observers := make([]func(int), 0, len(m.tickObservers))
		for _, fn := range m.tickObservers {
			observers = append(observers, fn)
		}
		m.mu.Unlock()

		for _, fn := range observers {
			fn(remaining)
		}

		if done {
			m.log.Info().Msg("reconnect countdown elapsed")
			m.nav.NavigateTo(m.loginRoute)
			return
		}
	}
}
