package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
	"github.com/driano-gael/joticket/internal/mocks"
)

func jsonResponse(status int, body string) *domain.APIResponse {
	return &domain.APIResponse{StatusCode: status, ContentType: "application/json", Raw: []byte(body)}
}

func newCheckout(api domain.APIClient, nav domain.Navigator, delay time.Duration) domain.CheckoutService {
	return NewCheckoutService(api, nav, "/payment/check/", "/tickets", delay, zerolog.Nop())
}

func TestCheckout_OutcomeMappingIsTotal(t *testing.T) {
	tests := []struct {
		name string
		resp *domain.APIResponse
		err  error
		want domain.PaymentOutcome
	}{
		{
			name: "succeeded",
			resp: jsonResponse(200, `{"gateway_response": {"status": "succeeded"}}`),
			want: domain.OutcomeSucceeded,
		},
		{
			name: "requires confirmation",
			resp: jsonResponse(200, `{"gateway_response": {"status": "requires_confirmation"}}`),
			want: domain.OutcomePending,
		},
		{
			name: "failed",
			resp: jsonResponse(200, `{"gateway_response": {"status": "failed"}}`),
			want: domain.OutcomeFailed,
		},
		{
			name: "refunded",
			resp: jsonResponse(200, `{"gateway_response": {"status": "refunded"}}`),
			want: domain.OutcomeRefunded,
		},
		{
			name: "unrecognized status",
			resp: jsonResponse(200, `{"gateway_response": {"status": "on_hold_forever"}}`),
			want: domain.OutcomeUnknown,
		},
		{
			name: "absent status",
			resp: jsonResponse(200, `{}`),
			want: domain.OutcomeUnknown,
		},
		{
			name: "non-json body",
			resp: &domain.APIResponse{StatusCode: 200, ContentType: "text/html", Raw: []byte("<html>")},
			want: domain.OutcomeUnknown,
		},
		{
			name: "transport failure",
			err:  errors.New("connection refused"),
			want: domain.OutcomeError,
		},
		{
			name: "http error",
			err:  &domain.HTTPError{StatusCode: 500, Response: jsonResponse(500, `{}`)},
			want: domain.OutcomeError,
		},
		{
			name: "session expired mid-checkout",
			err:  domain.ErrSessionExpired,
			want: domain.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewMockAPIClient()
			api.CallFunc = func(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error) {
				return tt.resp, tt.err
			}
			nav := mocks.NewMockNavigator("/checkout")

			got := newCheckout(api, nav, time.Millisecond).SubmitAndReconcile(context.Background(), 150, nil, false)
			if got != tt.want {
				t.Errorf("expected outcome %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCheckout_SuccessRedirectsToTicketsAfterDelay(t *testing.T) {
	api := mocks.NewMockAPIClient()
	api.CallFunc = func(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error) {
		return jsonResponse(200, `{"gateway_response": {"status": "succeeded"}}`), nil
	}
	nav := mocks.NewMockNavigator("/checkout")

	outcome := newCheckout(api, nav, 10*time.Millisecond).SubmitAndReconcile(context.Background(), 150, nil, false)
	if outcome != domain.OutcomeSucceeded {
		t.Fatalf("expected success, got %v", outcome)
	}

	// The redirect is delayed, not immediate
	if visited := nav.VisitedRoutes(); len(visited) != 0 {
		t.Fatalf("expected no immediate redirect, got %v", visited)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(nav.VisitedRoutes()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if visited := nav.VisitedRoutes(); len(visited) != 1 || visited[0] != "/tickets" {
		t.Errorf("expected one redirect to /tickets, got %v", visited)
	}
}

func TestCheckout_NonSuccessNeverRedirects(t *testing.T) {
	for _, status := range []string{"requires_confirmation", "failed", "refunded", "bogus"} {
		t.Run(status, func(t *testing.T) {
			api := mocks.NewMockAPIClient()
			api.CallFunc = func(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error) {
				return jsonResponse(200, fmt.Sprintf(`{"gateway_response": {"status": %q}}`, status)), nil
			}
			nav := mocks.NewMockNavigator("/checkout")

			newCheckout(api, nav, time.Millisecond).SubmitAndReconcile(context.Background(), 150, nil, false)

			time.Sleep(50 * time.Millisecond)
			if visited := nav.VisitedRoutes(); len(visited) != 0 {
				t.Errorf("expected no redirect for %s, got %v", status, visited)
			}
		})
	}
}

func TestCheckout_RequestCarriesCart(t *testing.T) {
	api := mocks.NewMockAPIClient()
	nav := mocks.NewMockNavigator("/checkout")
	items := []domain.Reservation{
		{EventID: 1, OfferID: 10, Quantity: 2},
		{EventID: 2, OfferID: 20, Quantity: 1},
	}

	newCheckout(api, nav, time.Millisecond).SubmitAndReconcile(context.Background(), 450, items, true)

	if len(api.Calls) != 1 {
		t.Fatalf("expected one payment call, got %d", len(api.Calls))
	}
	call := api.Calls[0]
	if call.Path != "/payment/check/" {
		t.Errorf("expected payment path, got %s", call.Path)
	}
	if !call.RequiresAuth {
		t.Error("payment check must be authenticated")
	}

	payload, err := json.Marshal(call.Opts.Body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	var sent struct {
		Amount      float64              `json:"amount"`
		Items       []domain.Reservation `json:"items"`
		ForceFailed bool                 `json:"force_failed"`
	}
	if err := json.Unmarshal(payload, &sent); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if sent.Amount != 450 || len(sent.Items) != 2 || !sent.ForceFailed {
		t.Errorf("unexpected payment payload: %+v", sent)
	}
}
