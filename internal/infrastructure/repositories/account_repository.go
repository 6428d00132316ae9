package repositories

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository over a key-value
// store, one key per field. The triple is all-or-nothing: a partial read
// clears whatever remains and reports no session.
type AccountRepositoryImpl struct {
	store    domain.KeyValueStore
	idKey    string
	nameKey  string
	emailKey string
	log      zerolog.Logger
}

// NewAccountRepository creates an account repository using the given key names
func NewAccountRepository(store domain.KeyValueStore, idKey, nameKey, emailKey string, log zerolog.Logger) domain.AccountRepository {
	return &AccountRepositoryImpl{
		store:    store,
		idKey:    idKey,
		nameKey:  nameKey,
		emailKey: emailKey,
		log:      log,
	}
}

// Save implements domain.AccountRepository
func (r *AccountRepositoryImpl) Save(ctx context.Context, account *domain.Account) {
	r.write(ctx, r.idKey, account.ID)
	r.write(ctx, r.nameKey, account.Name)
	r.write(ctx, r.emailKey, account.Email)
}

// Load implements domain.AccountRepository
func (r *AccountRepositoryImpl) Load(ctx context.Context) (*domain.Account, error) {
	id := r.read(ctx, r.idKey)
	name := r.read(ctx, r.nameKey)
	email := r.read(ctx, r.emailKey)

	if id == "" || name == "" || email == "" {
		r.Clear(ctx)
		return nil, domain.ErrSessionNotFound
	}

	return &domain.Account{ID: id, Name: name, Email: email}, nil
}

// Clear implements domain.AccountRepository
func (r *AccountRepositoryImpl) Clear(ctx context.Context) {
	if err := r.store.Delete(ctx, r.idKey, r.nameKey, r.emailKey); err != nil {
		r.log.Debug().Err(err).Msg("account clear skipped")
	}
}

func (r *AccountRepositoryImpl) read(ctx context.Context, key string) string {
	v, err := r.store.Get(ctx, key)
	if err != nil {
		if err != domain.ErrKeyNotFound {
			r.log.Debug().Err(err).Str("key", key).Msg("account read failed, treating as absent")
		}
		return ""
	}
	return v
}

func (r *AccountRepositoryImpl) write(ctx context.Context, key, value string) {
	if err := r.store.Set(ctx, key, value); err != nil {
		r.log.Debug().Err(err).Str("key", key).Msg("account write skipped")
	}
}
