package domain

// SessionEventType identifies a process-wide session notification
type SessionEventType string

const (
	// TokenRefreshedEvent is broadcast after a successful token refresh so
	// that independently mounted consumers can resynchronize without each
	// performing its own refresh.
	TokenRefreshedEvent SessionEventType = "TOKEN_REFRESHED"

	// SessionExpiredEvent is broadcast when an authenticated call failed
	// and the one-shot refresh could not recover it.
	SessionExpiredEvent SessionEventType = "SESSION_EXPIRED"
)

// SessionListener receives session events. Listeners run synchronously on
// the publishing goroutine and must not block.
type SessionListener func(event SessionEventType)
