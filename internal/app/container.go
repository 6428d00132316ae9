package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
	"github.com/driano-gael/joticket/internal/config"
	"github.com/driano-gael/joticket/internal/infrastructure/api"
	"github.com/driano-gael/joticket/internal/infrastructure/auth"
	"github.com/driano-gael/joticket/internal/infrastructure/repositories"
	"github.com/driano-gael/joticket/internal/infrastructure/storage"
	"github.com/driano-gael/joticket/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    zerolog.Logger

	// Infrastructure
	Store  domain.KeyValueStore
	Tokens domain.TokenStore
	Bus    domain.SessionBroadcaster
	API    domain.APIClient

	// Repositories
	Accounts domain.AccountRepository

	// Services
	Auth     domain.AuthService
	Session  domain.SessionLifecycle
	Ledger   domain.ReservationLedger
	Checkout domain.CheckoutService
}

// NewContainer creates and wires all dependencies. nav is the storefront's
// routing adapter; every redirect the SDK performs goes through it.
func NewContainer(cfg *config.Config, nav domain.Navigator, log zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg, Log: log}

	if err := container.initStorage(); err != nil {
		return nil, err
	}
	container.initInfrastructure()
	container.initServices(nav)

	// Rebuild the cart a previous process left behind
	container.Ledger.Restore(context.Background())

	return container, nil
}

func (c *Container) initStorage() error {
	if c.Config.RedisAddr == "" {
		c.Store = storage.NewMemoryStore()
		return nil
	}

	redisStore := storage.NewRedisStore(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisStore.Ping(ctx); err != nil {
		return err
	}

	c.Store = redisStore
	return nil
}

func (c *Container) initInfrastructure() {
	c.Bus = services.NewBroadcaster()
	c.Tokens = auth.NewStorageTokenStore(c.Store, c.Config.AccessTokenKey, c.Config.RefreshTokenKey, c.Log)
	c.API = api.NewClient(c.Config.BaseURL, c.Config.RefreshPath, c.Config.Timeout, c.Tokens, c.Bus, c.Log)
}

func (c *Container) initServices(nav domain.Navigator) {
	c.Accounts = repositories.NewAccountRepository(
		c.Store,
		c.Config.AccountIDKey,
		c.Config.AccountNameKey,
		c.Config.AccountEmailKey,
		c.Log,
	)

	c.Auth = services.NewAuthService(c.API, c.Tokens, c.Accounts, c.Config.LoginPath, c.Config.ProfilePath, c.Log)

	c.Session = services.NewSessionManager(
		c.Config.CountdownTicks,
		c.Config.TickInterval,
		c.Config.HomeRoute,
		c.Config.LoginRoute,
		nav,
		c.Bus,
		c.Log,
	)

	c.Ledger = services.NewReservationLedger(c.Store, c.Config.CartKey, c.Log)

	c.Checkout = services.NewCheckoutService(
		c.API,
		nav,
		c.Config.PaymentPath,
		c.Config.TicketsRoute,
		c.Config.SuccessRedirectDelay,
		c.Log,
	)
}
