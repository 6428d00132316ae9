package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/driano-gael/joticket/domain"
)

// Client implements domain.APIClient. Every storefront call flows through
// it: it attaches the bearer token, recovers a 401 on an authenticated call
// with exactly one refresh and one retry, and escalates to session expiry
// when the refresh fails.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	refreshPath string
	tokens      domain.TokenStore
	bus         domain.SessionBroadcaster

	// Concurrent 401s share one in-flight refresh. The refresh would be
	// idempotent anyway (last successful write wins in the token store),
	// singleflight just avoids hammering the refresh endpoint.
	refreshGroup singleflight.Group

	log zerolog.Logger
}

// NewClient creates the authenticated request pipeline
func NewClient(baseURL, refreshPath string, timeout time.Duration, tokens domain.TokenStore, bus domain.SessionBroadcaster, log zerolog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		refreshPath: refreshPath,
		tokens:      tokens,
		bus:         bus,
		log:         log,
	}
}

// Call implements domain.APIClient
func (c *Client) Call(ctx context.Context, path string, opts domain.CallOptions, requiresAuth bool) (*domain.APIResponse, error) {
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := c.do(ctx, opts.Method, path, body, opts.Header, requiresAuth)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && requiresAuth {
		if err := c.refreshShared(ctx); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("token refresh failed, session expired")
			c.tokens.Clear(ctx)
			c.bus.Publish(domain.SessionExpiredEvent)
			return nil, domain.ErrSessionExpired
		}

		c.log.Debug().Str("path", path).Msg("token refreshed, retrying request")
		resp, err = c.do(ctx, opts.Method, path, body, opts.Header, requiresAuth)
		if err != nil {
			return nil, fmt.Errorf("retry of %s failed: %w", path, err)
		}
		// A second 401 is not retried again; it falls through as a
		// plain HTTP error like any other non-2xx.
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.HTTPError{StatusCode: resp.StatusCode, Response: resp}
	}

	return resp, nil
}

// refreshShared collapses concurrent refresh attempts into one network call
func (c *Client) refreshShared(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

// refresh exchanges the stored refresh token for a new access token. It
// attempts exactly one network call: any failure reports without retrying.
func (c *Client) refresh(ctx context.Context) error {
	refresh := c.tokens.RefreshToken(ctx)
	if refresh == "" {
		return domain.ErrRefreshTokenMissing
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return fmt.Errorf("failed to encode refresh payload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.refreshPath, payload, domain.NewHeader(), false)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ErrRefreshFailed
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := resp.Decode(&out); err != nil {
		return domain.ErrRefreshFailed
	}
	if out.Access == "" {
		return domain.ErrRefreshFailed
	}

	c.tokens.SetAccessToken(ctx, out.Access)
	c.bus.Publish(domain.TokenRefreshedEvent)
	return nil
}

// do issues one HTTP request and reads the full response. Headers are
// rebuilt on every invocation so a retry picks up the freshly stored token.
func (c *Client) do(ctx context.Context, method, path string, body []byte, extra domain.Header, requiresAuth bool) (*domain.APIResponse, error) {
	if method == "" {
		method = http.MethodGet
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	headers := buildHeaders(extra, c.tokens.AccessToken(ctx), requiresAuth)
	headers.Each(func(key, value string) {
		req.Header.Set(key, value)
	})

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &domain.APIResponse{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Raw:         raw,
	}, nil
}

// encodeBody turns the caller's body into wire bytes. Raw bytes and strings
// pass through unchanged, anything else is JSON-encoded.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(body)
	}
}
