package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

// StorageTokenStore implements domain.TokenStore over a persisted key-value
// store. Storage failures never propagate: a failed read reports an absent
// token, a failed write is logged and skipped. A write either fully replaces
// a token or leaves the prior one untouched.
type StorageTokenStore struct {
	store      domain.KeyValueStore
	accessKey  string
	refreshKey string
	parser     *jwt.Parser
	log        zerolog.Logger
}

// NewStorageTokenStore creates a token store using the given key names
func NewStorageTokenStore(store domain.KeyValueStore, accessKey, refreshKey string, log zerolog.Logger) domain.TokenStore {
	return &StorageTokenStore{
		store:      store,
		accessKey:  accessKey,
		refreshKey: refreshKey,
		parser:     jwt.NewParser(),
		log:        log,
	}
}

// AccessToken implements domain.TokenStore
func (s *StorageTokenStore) AccessToken(ctx context.Context) string {
	return s.read(ctx, s.accessKey)
}

// RefreshToken implements domain.TokenStore
func (s *StorageTokenStore) RefreshToken(ctx context.Context) string {
	return s.read(ctx, s.refreshKey)
}

// SetPair implements domain.TokenStore
func (s *StorageTokenStore) SetPair(ctx context.Context, access, refresh string) {
	s.write(ctx, s.accessKey, access)
	s.write(ctx, s.refreshKey, refresh)
}

// SetAccessToken implements domain.TokenStore
func (s *StorageTokenStore) SetAccessToken(ctx context.Context, access string) {
	s.write(ctx, s.accessKey, access)
}

// Clear implements domain.TokenStore
func (s *StorageTokenStore) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, s.accessKey, s.refreshKey); err != nil {
		s.log.Debug().Err(err).Msg("token clear skipped")
	}
}

// IsValid implements domain.TokenStore. The access token's claims segment is
// decoded without signature verification: the client only needs the exp
// claim, the server remains the authority on authenticity. Missing tokens,
// wrong segment counts, undecodable payloads and past expiries all report
// false, never an error.
func (s *StorageTokenStore) IsValid(ctx context.Context) bool {
	raw := s.AccessToken(ctx)
	if raw == "" {
		return false
	}

	token, _, err := s.parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Time.After(time.Now())
}

func (s *StorageTokenStore) read(ctx context.Context, key string) string {
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if err != domain.ErrKeyNotFound {
			s.log.Debug().Err(err).Str("key", key).Msg("token read failed, treating as absent")
		}
		return ""
	}
	return v
}

func (s *StorageTokenStore) write(ctx context.Context, key, value string) {
	if err := s.store.Set(ctx, key, value); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("token write skipped")
	}
}
