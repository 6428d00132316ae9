package services

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/driano-gael/joticket/domain"
	"github.com/driano-gael/joticket/internal/mocks"
)

const (
	testTicks    = 3
	testInterval = 10 * time.Millisecond
)

type tickRecorder struct {
	mu    sync.Mutex
	ticks []int
}

func (r *tickRecorder) record(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *tickRecorder) all() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.ticks))
	copy(out, r.ticks)
	return out
}

func newManager(route string) (*SessionManager, *mocks.MockNavigator, *Broadcaster) {
	nav := mocks.NewMockNavigator(route)
	bus := NewBroadcaster()
	m := NewSessionManager(testTicks, testInterval, "/", "/login", nav, bus, zerolog.Nop())
	return m, nav, bus
}

func TestSessionManager_ExpiryRemembersRouteAndShowsNotice(t *testing.T) {
	m, _, bus := newManager("/events/5")

	bus.Publish(domain.SessionExpiredEvent)

	require.Equal(t, domain.SessionExpiryPending, m.State())
	require.Equal(t, testTicks, m.Remaining())

	route, ok := m.ConsumeRedirect()
	require.True(t, ok)
	require.Equal(t, "/events/5", route)
}

func TestSessionManager_HomeAndLoginRoutesAreNotRemembered(t *testing.T) {
	for _, route := range []string{"/", "/login"} {
		t.Run(route, func(t *testing.T) {
			m, _, bus := newManager(route)
			bus.Publish(domain.SessionExpiredEvent)

			_, ok := m.ConsumeRedirect()
			require.False(t, ok)
		})
	}
}

func TestSessionManager_CountdownRunsToZeroAndRedirectsOnce(t *testing.T) {
	m, nav, bus := newManager("/events/5")
	rec := &tickRecorder{}
	m.OnCountdownTick(rec.record)

	bus.Publish(domain.SessionExpiredEvent)

	require.Eventually(t, func() bool {
		return m.State() == domain.SessionActive
	}, 2*time.Second, 5*time.Millisecond)

	// Let any stray ticker fire before counting redirects
	time.Sleep(5 * testInterval)

	require.Equal(t, []int{2, 1, 0}, rec.all())
	require.Equal(t, []string{"/login"}, nav.VisitedRoutes())
}

func TestSessionManager_ReconnectRedirectsImmediately(t *testing.T) {
	m, nav, bus := newManager("/events/5")

	bus.Publish(domain.SessionExpiredEvent)
	m.Reconnect()

	require.Equal(t, domain.SessionActive, m.State())
	require.Equal(t, []string{"/login"}, nav.VisitedRoutes())

	// The cancelled countdown must not fire a second redirect
	time.Sleep(time.Duration(testTicks+2) * testInterval)
	require.Equal(t, []string{"/login"}, nav.VisitedRoutes())
}

func TestSessionManager_DismissCancelsWithoutRedirect(t *testing.T) {
	m, nav, bus := newManager("/events/5")

	bus.Publish(domain.SessionExpiredEvent)
	m.Dismiss()

	require.Equal(t, domain.SessionActive, m.State())

	time.Sleep(time.Duration(testTicks+2) * testInterval)
	require.Empty(t, nav.VisitedRoutes())
}

func TestSessionManager_ReopenResetsCountdown(t *testing.T) {
	m, _, bus := newManager("/events/5")
	rec := &tickRecorder{}
	m.OnCountdownTick(rec.record)

	bus.Publish(domain.SessionExpiredEvent)

	// Wait until the countdown has visibly advanced, then close the notice
	require.Eventually(t, func() bool {
		return m.Remaining() < testTicks
	}, 2*time.Second, time.Millisecond)
	m.Dismiss()

	// Reopening starts from the full count, partial counts never persist
	bus.Publish(domain.SessionExpiredEvent)
	require.Equal(t, domain.SessionExpiryPending, m.State())
	require.Equal(t, testTicks, m.Remaining())
}

func TestSessionManager_DuplicateExpiryIsIgnoredWhilePending(t *testing.T) {
	m, nav, bus := newManager("/events/5")

	bus.Publish(domain.SessionExpiredEvent)
	bus.Publish(domain.SessionExpiredEvent)
	bus.Publish(domain.SessionExpiredEvent)

	require.Eventually(t, func() bool {
		return m.State() == domain.SessionActive
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(5 * testInterval)

	// One notice, one automatic redirect
	require.Equal(t, []string{"/login"}, nav.VisitedRoutes())
}

func TestSessionManager_ConsumeRedirectIsOneShot(t *testing.T) {
	m, _, bus := newManager("/events/5")
	bus.Publish(domain.SessionExpiredEvent)
	m.Dismiss()

	route, ok := m.ConsumeRedirect()
	require.True(t, ok)
	require.Equal(t, "/events/5", route)

	// No stale route may be reused by a later unrelated failure
	_, ok = m.ConsumeRedirect()
	require.False(t, ok)
}

func TestSessionManager_DismissThenReconnectIsNoop(t *testing.T) {
	m, nav, bus := newManager("/events/5")

	bus.Publish(domain.SessionExpiredEvent)
	m.Dismiss()
	m.Reconnect()

	require.Empty(t, nav.VisitedRoutes())
}
