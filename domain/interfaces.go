package domain

import "context"

// KeyValueStore defines the persisted string store backing tokens, the
// account triple and the reservation ledger. Implementations may fail (store
// unavailable, quota exceeded); the layers above swallow those failures and
// treat them as "value absent" / "write skipped".
type KeyValueStore interface {
	// Get returns the value for key, or ErrKeyNotFound when absent
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenStore owns the access/refresh token pair. None of its methods return
// errors: storage failures surface as absent values, never as propagated
// failures.
type TokenStore interface {
	// AccessToken returns the stored access token, or "" when absent
	AccessToken(ctx context.Context) string
	// RefreshToken returns the stored refresh token, or "" when absent
	RefreshToken(ctx context.Context) string
	// SetPair replaces both tokens
	SetPair(ctx context.Context, access, refresh string)
	// SetAccessToken replaces the access token and leaves the refresh
	// token untouched
	SetAccessToken(ctx context.Context, access string)
	// Clear removes both tokens
	Clear(ctx context.Context)
	// IsValid reports whether a non-expired access token is stored.
	// Missing, malformed and expired tokens all yield false.
	IsValid(ctx context.Context) bool
}

// CallOptions carries the per-call request parameters for the pipeline
type CallOptions struct {
	Method string // defaults to GET
	Body   any    // []byte and string pass through, everything else is JSON-encoded
	Header Header // extra headers, already normalized (see Header constructors)
}

// APIClient defines the authenticated request pipeline. A 401 on a call with
// requiresAuth set triggers exactly one token refresh and one retry; if the
// refresh fails the call returns ErrSessionExpired and the token store is
// cleared.
type APIClient interface {
	Call(ctx context.Context, path string, opts CallOptions, requiresAuth bool) (*APIResponse, error)
}

// SessionBroadcaster is the explicit observer registration API replacing a
// process-global event bus. Publish fans an event out to every live
// subscriber.
type SessionBroadcaster interface {
	Subscribe(listener SessionListener) (unsubscribe func())
	Publish(event SessionEventType)
}

// AccountRepository persists the signed-in user's id/name/email triple.
// Load is all-or-nothing: if any field is missing the whole triple is
// cleared and ErrSessionNotFound is returned.
type AccountRepository interface {
	Save(ctx context.Context, account *Account)
	Load(ctx context.Context) (*Account, error)
	Clear(ctx context.Context)
}

// AuthService defines the session-facing auth operations
type AuthService interface {
	// Login authenticates, stores the token pair and the account triple
	Login(ctx context.Context, email, password string) (*Account, error)
	// Restore silently rebuilds the session from storage: a valid access
	// token plus a complete triple, otherwise everything is cleared and
	// ErrSessionNotFound is returned.
	Restore(ctx context.Context) (*Account, error)
	// Logout destroys the stored session
	Logout(ctx context.Context)
}

// Navigator abstracts the storefront's routing layer
type Navigator interface {
	CurrentRoute() string
	NavigateTo(route string)
}

// SessionLifecycle defines the observable surface of the session expiry
// state machine.
type SessionLifecycle interface {
	// State reports whether the expiry notice is currently showing
	State() SessionState
	// Remaining returns the countdown ticks left while expiry is pending
	Remaining() int
	// Reconnect confirms reconnection: cancels the countdown and
	// redirects to the login route immediately.
	Reconnect()
	// Dismiss closes the notice without reconnecting: the countdown is
	// cancelled and no redirect occurs, but the session stays cleared.
	Dismiss()
	// ConsumeRedirect atomically returns and clears the remembered
	// post-login route. The second return is false when none is pending.
	ConsumeRedirect() (string, bool)
	// OnCountdownTick registers an observer called with the remaining
	// tick count each time the countdown advances.
	OnCountdownTick(fn func(remaining int)) (unsubscribe func())
}

// ReservationLedger is the cart's per-(event, offer) quantity map. Mutations
// are unconditional at this layer: capacity enforcement belongs to the
// caller. Every mutation persists the full ledger synchronously; persistence
// failures are swallowed.
type ReservationLedger interface {
	Reserve(ctx context.Context, eventID, offerID int64)
	Unreserve(ctx context.Context, eventID, offerID int64)
	Clear(ctx context.Context)
	Quantity(eventID, offerID int64) int
	Items() []Reservation
	// Restore reloads the ledger from persistent storage, reconstructing
	// the exact state prior to a process restart.
	Restore(ctx context.Context)
}

// CheckoutService submits a payment check and reconciles the gateway's
// asynchronous status onto exactly one PaymentOutcome.
type CheckoutService interface {
	SubmitAndReconcile(ctx context.Context, amount float64, items []Reservation, forceFailure bool) PaymentOutcome
}
