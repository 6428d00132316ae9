package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TokenPair represents the bearer credentials issued by the auth endpoints.
// A refresh token may outlive its access token: the pair is still usable for
// a silent refresh even when the access token has expired.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Account represents the signed-in user, reconstructed from three
// independently stored fields. The triple is all-or-nothing: a session with
// any field missing is treated as absent.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event represents a sellable event with a fixed total capacity
type Event struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	TotalCapacity int    `json:"total_capacity"`
}

// Offer represents a ticket formula for an event (solo, duo, family...).
// PersonsPerUnit is how many seats one unit of the offer consumes.
type Offer struct {
	ID             int64   `json:"id"`
	EventID        int64   `json:"event_id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	PersonsPerUnit int     `json:"persons_per_unit"`
}

// Reservation represents one cart line: the quantity of an offer held for an
// event. Quantity is always >= 1 while the line exists.
type Reservation struct {
	EventID  int64 `json:"event_id"`
	OfferID  int64 `json:"offer_id"`
	Quantity int   `json:"quantity"`
}

// Gateway statuses reported by the payment provider
const (
	GatewaySucceeded            = "succeeded"
	GatewayRequiresConfirmation = "requires_confirmation"
	GatewayFailed               = "failed"
	GatewayRefunded             = "refunded"
)

// PaymentOutcome is the single user-facing result of a checkout attempt.
// The mapping from gateway status to outcome is total: every response,
// including unrecognized ones, selects exactly one outcome.
type PaymentOutcome int

const (
	// OutcomeSucceeded means the payment went through; the caller is
	// redirected to the tickets view after a fixed delay.
	OutcomeSucceeded PaymentOutcome = iota
	// OutcomePending means the gateway wants an extra confirmation step.
	OutcomePending
	// OutcomeFailed means the gateway rejected the payment.
	OutcomeFailed
	// OutcomeRefunded means the payment was taken then refunded.
	OutcomeRefunded
	// OutcomeUnknown means the gateway answered with a status this client
	// does not model, or no status at all.
	OutcomeUnknown
	// OutcomeError means the call never produced a usable gateway response.
	OutcomeError
)

// Message returns the user-facing text for the outcome
func (o PaymentOutcome) Message() string {
	switch o {
	case OutcomeSucceeded:
		return "Payment accepted. Your tickets are on their way."
	case OutcomePending:
		return "Payment pending confirmation by the gateway."
	case OutcomeFailed:
		return "Payment failed. No ticket was issued."
	case OutcomeRefunded:
		return "Payment was refunded."
	case OutcomeUnknown:
		return "Unknown payment status. Please check your orders."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

func (o PaymentOutcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomePending:
		return "pending"
	case OutcomeFailed:
		return "failed"
	case OutcomeRefunded:
		return "refunded"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "error"
	}
}

// SessionState is the observable state of the session lifecycle manager
type SessionState int

const (
	// SessionActive means no expiry notice is showing
	SessionActive SessionState = iota
	// SessionExpiryPending means the expiry notice is showing and the
	// reconnect countdown is running
	SessionExpiryPending
)

// APIResponse carries a response body from the request pipeline along with
// enough metadata to parse it the way the server declared it.
type APIResponse struct {
	StatusCode  int
	ContentType string
	Raw         []byte
}

// IsJSON reports whether the server declared a JSON body
func (r *APIResponse) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// Decode unmarshals a JSON body into v
func (r *APIResponse) Decode(v any) error {
	if !r.IsJSON() {
		return fmt.Errorf("response content-type %q is not JSON", r.ContentType)
	}
	return json.Unmarshal(r.Raw, v)
}

// Text returns the raw body unchanged
func (r *APIResponse) Text() string {
	return string(r.Raw)
}
