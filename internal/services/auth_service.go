package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	api         domain.APIClient
	tokens      domain.TokenStore
	accounts    domain.AccountRepository
	loginPath   string
	profilePath string
	log         zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	api domain.APIClient,
	tokens domain.TokenStore,
	accounts domain.AccountRepository,
	loginPath string,
	profilePath string,
	log zerolog.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		api:         api,
		tokens:      tokens,
		accounts:    accounts,
		loginPath:   loginPath,
		profilePath: profilePath,
		log:         log,
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	resp, err := s.api.Call(ctx, s.loginPath, domain.CallOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password},
	}, false)
	if err != nil {
		if httpErr, ok := domain.AsHTTPError(err); ok && httpErr.StatusCode == http.StatusUnauthorized {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var creds struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := resp.Decode(&creds); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if creds.Access == "" || creds.Refresh == "" {
		return nil, fmt.Errorf("login response missing token pair")
	}

	s.tokens.SetPair(ctx, creds.Access, creds.Refresh)

	account, err := s.fetchProfile(ctx)
	if err != nil {
		s.tokens.Clear(ctx)
		return nil, fmt.Errorf("failed to load profile after login: %w", err)
	}

	s.accounts.Save(ctx, account)
	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return account, nil
}

// Restore implements domain.AuthService. A valid session needs a non-expired
// access token and a complete account triple; anything less destroys
// whatever remains and reports no session.
func (s *AuthServiceImpl) Restore(ctx context.Context) (*domain.Account, error) {
	if !s.tokens.IsValid(ctx) {
		s.tokens.Clear(ctx)
		s.accounts.Clear(ctx)
		return nil, domain.ErrSessionNotFound
	}

	account, err := s.accounts.Load(ctx)
	if err != nil {
		s.tokens.Clear(ctx)
		return nil, domain.ErrSessionNotFound
	}

	return account, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	s.tokens.Clear(ctx)
	s.accounts.Clear(ctx)
	s.log.Info().Msg("session destroyed")
}

func (s *AuthServiceImpl) fetchProfile(ctx context.Context) (*domain.Account, error) {
	resp, err := s.api.Call(ctx, s.profilePath, domain.CallOptions{}, true)
	if err != nil {
		return nil, err
	}

	var profile struct {
		ID    json.Number `json:"id"`
		Name  string      `json:"name"`
		Email string      `json:"email"`
	}
	if err := resp.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &domain.Account{
		ID:    profile.ID.String(),
		Name:  profile.Name,
		Email: profile.Email,
	}, nil
}
