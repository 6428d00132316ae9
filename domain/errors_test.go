package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsHTTPError(t *testing.T) {
	httpErr := &HTTPError{
		StatusCode: 404,
		Response:   &APIResponse{StatusCode: 404, ContentType: "application/json", Raw: []byte(`{"detail":"missing"}`)},
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "direct http error", err: httpErr, want: true},
		{name: "wrapped http error", err: fmt.Errorf("checkout: %w", httpErr), want: true},
		{name: "sentinel error", err: ErrSessionExpired, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsHTTPError(tt.err)
			if ok != tt.want {
				t.Fatalf("expected ok=%v, got %v", tt.want, ok)
			}
			if ok && got.StatusCode != 404 {
				t.Errorf("expected status 404, got %d", got.StatusCode)
			}
		})
	}
}

func TestHTTPError_CarriesParsedBody(t *testing.T) {
	httpErr := &HTTPError{
		StatusCode: 422,
		Response:   &APIResponse{StatusCode: 422, ContentType: "application/json", Raw: []byte(`{"detail":"sold out"}`)},
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := httpErr.Response.Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Detail != "sold out" {
		t.Errorf("expected detail from error body, got %q", body.Detail)
	}
}
