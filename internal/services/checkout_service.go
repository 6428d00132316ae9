package services

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

// CheckoutServiceImpl implements domain.CheckoutService. It submits the
// payment check through the authenticated pipeline and reconciles whatever
// comes back onto exactly one user-facing outcome. Beyond selecting that
// outcome its only side effect is the delayed redirect to the tickets view
// on success: it never touches the reservation ledger, cart clearing is the
// caller's explicit follow-up.
type CheckoutServiceImpl struct {
	api           domain.APIClient
	nav           domain.Navigator
	paymentPath   string
	ticketsRoute  string
	redirectDelay time.Duration
	log           zerolog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	api domain.APIClient,
	nav domain.Navigator,
	paymentPath string,
	ticketsRoute string,
	redirectDelay time.Duration,
	log zerolog.Logger,
) domain.CheckoutService {
	return &CheckoutServiceImpl{
		api:           api,
		nav:           nav,
		paymentPath:   paymentPath,
		ticketsRoute:  ticketsRoute,
		redirectDelay: redirectDelay,
		log:           log,
	}
}

type paymentCheckRequest struct {
	Amount      float64              `json:"amount"`
	Items       []domain.Reservation `json:"items"`
	ForceFailed bool                 `json:"force_failed,omitempty"`
}

type paymentCheckResponse struct {
	GatewayResponse struct {
		Status string `json:"status"`
	} `json:"gateway_response"`
}

// SubmitAndReconcile implements domain.CheckoutService
func (s *CheckoutServiceImpl) SubmitAndReconcile(ctx context.Context, amount float64, items []domain.Reservation, forceFailure bool) domain.PaymentOutcome {
	resp, err := s.api.Call(ctx, s.paymentPath, domain.CallOptions{
		Method: http.MethodPost,
		Body: paymentCheckRequest{
			Amount:      amount,
			Items:       items,
			ForceFailed: forceFailure,
		},
	}, true)
	if err != nil {
		s.log.Warn().Err(err).Msg("payment check did not complete")
		return domain.OutcomeError
	}

	var payment paymentCheckResponse
	if err := resp.Decode(&payment); err != nil {
		s.log.Warn().Err(err).Msg("payment response unreadable")
		return domain.OutcomeUnknown
	}

	switch payment.GatewayResponse.Status {
	case domain.GatewaySucceeded:
		s.log.Info().Float64("amount", amount).Msg("payment succeeded")
		time.AfterFunc(s.redirectDelay, func() {
			s.nav.NavigateTo(s.ticketsRoute)
		})
		return domain.OutcomeSucceeded
	case domain.GatewayRequiresConfirmation:
		return domain.OutcomePending
	case domain.GatewayFailed:
		return domain.OutcomeFailed
	case domain.GatewayRefunded:
		return domain.OutcomeRefunded
	default:
		s.log.Warn().Str("status", payment.GatewayResponse.Status).Msg("unmodeled gateway status")
		return domain.OutcomeUnknown
	}
}
