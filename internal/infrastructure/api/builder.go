package api

import "github.com/driano-gael/joticket/domain"

// buildHeaders constructs the outgoing header set for one call. The JSON
// content-type is the baseline; caller-supplied entries merge over it. When
// the call requires auth and a token is stored, the stored token's bearer
// entry overrides any Authorization the caller supplied: the stored token
// always wins.
func buildHeaders(extra domain.Header, token string, requiresAuth bool) domain.Header {
	headers := domain.NewHeader()
	headers.Set("Content-Type", "application/json")

	extra.Each(headers.Set)

	if requiresAuth && token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	return headers
}
